// Package model defines the threat-model object graph consumed by the
// report engine. Field names and JSON tags follow the TMI API schema so a
// threat model exported by the server unmarshals directly.
package model

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and audit fields shared by every TMI entity.
type Base struct {
	ID         uuid.UUID         `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	ModifiedAt time.Time         `json:"modified_at"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ThreatModel is the root document object. Child collections each carry an
// IncludeInReport flag; the Reported* accessors apply that filter.
type ThreatModel struct {
	Base
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Owner        string       `json:"owner,omitempty"`
	Version      string       `json:"version,omitempty"`
	Status       string       `json:"status,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Assets       []Asset      `json:"assets,omitempty"`
	Diagrams     []Diagram    `json:"diagrams,omitempty"`
	Threats      []Threat     `json:"threats,omitempty"`
	Notes        []Note       `json:"notes,omitempty"`
	Documents    []Document   `json:"documents,omitempty"`
	Repositories []Repository `json:"repositories,omitempty"`
}

// Asset is a thing of value identified by the threat model.
type Asset struct {
	Base
	Name            string `json:"name"`
	Type            string `json:"type,omitempty"`
	Sensitivity     string `json:"sensitivity,omitempty"`
	Description     string `json:"description,omitempty"`
	IncludeInReport bool   `json:"include_in_report"`
}

// Diagram is an exported drawing. SVG holds the vector source as produced
// by the editor; the report rasterizes it at print resolution.
type Diagram struct {
	Base
	Name            string `json:"name"`
	Type            string `json:"diagram_type,omitempty"`
	Description     string `json:"description,omitempty"`
	SVG             []byte `json:"svg,omitempty"`
	IncludeInReport bool   `json:"include_in_report"`
}

// Threat is a single identified threat with its assessment fields.
type Threat struct {
	Base
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Category        string  `json:"category,omitempty"`
	Severity        string  `json:"severity,omitempty"`
	Likelihood      string  `json:"likelihood,omitempty"`
	Impact          string  `json:"impact,omitempty"`
	RiskScore       float64 `json:"risk_score,omitempty"`
	Status          string  `json:"status,omitempty"`
	AssignedTo      string  `json:"assigned_to,omitempty"`
	Mitigation      string  `json:"mitigation,omitempty"`
	IncludeInReport bool    `json:"include_in_report"`
}

// Note is free-form commentary. Content is markdown.
type Note struct {
	Base
	Title           string `json:"title"`
	Content         string `json:"content,omitempty"`
	IncludeInReport bool   `json:"include_in_report"`
}

// Document is an external reference document.
type Document struct {
	Base
	Name            string `json:"name"`
	URL             string `json:"url,omitempty"`
	Description     string `json:"description,omitempty"`
	IncludeInReport bool   `json:"include_in_report"`
}

// Repository is a source-code repository in scope for the model.
type Repository struct {
	Base
	Name            string `json:"name"`
	Type            string `json:"source_type,omitempty"`
	URL             string `json:"url,omitempty"`
	Description     string `json:"description,omitempty"`
	IncludeInReport bool   `json:"include_in_report"`
}

// Decode reads a threat-model JSON export.
func Decode(r io.Reader) (*ThreatModel, error) {
	var tm ThreatModel
	if err := json.NewDecoder(r).Decode(&tm); err != nil {
		return nil, err
	}
	return &tm, nil
}

// ReportedAssets returns the assets flagged for report inclusion, in input
// order.
func (tm *ThreatModel) ReportedAssets() []Asset {
	var out []Asset
	for _, a := range tm.Assets {
		if a.IncludeInReport {
			out = append(out, a)
		}
	}
	return out
}

// ReportedDiagrams returns the diagrams flagged for report inclusion.
func (tm *ThreatModel) ReportedDiagrams() []Diagram {
	var out []Diagram
	for _, d := range tm.Diagrams {
		if d.IncludeInReport {
			out = append(out, d)
		}
	}
	return out
}

// ReportedThreats returns the threats flagged for report inclusion.
func (tm *ThreatModel) ReportedThreats() []Threat {
	var out []Threat
	for _, th := range tm.Threats {
		if th.IncludeInReport {
			out = append(out, th)
		}
	}
	return out
}

// ReportedNotes returns the notes flagged for report inclusion.
func (tm *ThreatModel) ReportedNotes() []Note {
	var out []Note
	for _, n := range tm.Notes {
		if n.IncludeInReport {
			out = append(out, n)
		}
	}
	return out
}

// ReportedDocuments returns the documents flagged for report inclusion.
func (tm *ThreatModel) ReportedDocuments() []Document {
	var out []Document
	for _, d := range tm.Documents {
		if d.IncludeInReport {
			out = append(out, d)
		}
	}
	return out
}

// ReportedRepositories returns the repositories flagged for report
// inclusion.
func (tm *ThreatModel) ReportedRepositories() []Repository {
	var out []Repository
	for _, r := range tm.Repositories {
		if r.IncludeInReport {
			out = append(out, r)
		}
	}
	return out
}
