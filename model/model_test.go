package model

import (
	"strings"
	"testing"
)

const sampleExport = `{
	"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	"name": "Payments Service",
	"owner": "alice@example.com",
	"description": "Card processing path",
	"assets": [
		{"name": "Card vault", "type": "datastore", "sensitivity": "high", "include_in_report": true},
		{"name": "Scratch cache", "type": "cache", "include_in_report": false}
	],
	"threats": [
		{"title": "Token replay", "severity": "High", "risk_score": 8.1, "include_in_report": true}
	],
	"documents": [
		{"name": "PCI scope doc", "url": "https://example.com/pci", "include_in_report": true}
	],
	"notes": [
		{"title": "Review outcome", "content": "All **critical** findings closed.", "include_in_report": true}
	]
}`

func TestDecode(t *testing.T) {
	tm, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if tm.Name != "Payments Service" {
		t.Errorf("Name = %q", tm.Name)
	}
	if tm.ID.String() != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("ID = %s", tm.ID)
	}
	if len(tm.Assets) != 2 {
		t.Fatalf("Assets = %d, want 2", len(tm.Assets))
	}
	if tm.Threats[0].RiskScore != 8.1 {
		t.Errorf("RiskScore = %v, want 8.1", tm.Threats[0].RiskScore)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"name": `)); err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestReportedFiltering(t *testing.T) {
	tm, err := Decode(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	assets := tm.ReportedAssets()
	if len(assets) != 1 || assets[0].Name != "Card vault" {
		t.Errorf("ReportedAssets = %+v, want only Card vault", assets)
	}
	if n := len(tm.ReportedThreats()); n != 1 {
		t.Errorf("ReportedThreats = %d, want 1", n)
	}
	if n := len(tm.ReportedDocuments()); n != 1 {
		t.Errorf("ReportedDocuments = %d, want 1", n)
	}
	if n := len(tm.ReportedDiagrams()); n != 0 {
		t.Errorf("ReportedDiagrams = %d, want 0", n)
	}
	if n := len(tm.ReportedRepositories()); n != 0 {
		t.Errorf("ReportedRepositories = %d, want 0", n)
	}
	if n := len(tm.ReportedNotes()); n != 1 {
		t.Errorf("ReportedNotes = %d, want 1", n)
	}
}

func TestReportedFilteringEmptyModel(t *testing.T) {
	var tm ThreatModel
	if got := tm.ReportedAssets(); got != nil {
		t.Errorf("ReportedAssets on empty model = %v, want nil", got)
	}
}
