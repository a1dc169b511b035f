// Package fonts loads, validates and embeds the font programs a report
// document needs. Every document carries four faces (regular, bold,
// italic, monospace); the regular and italic programs come from
// language-specific files while bold and monospace use the built-in
// standard fonts. A font program that cannot be fetched or parsed is
// replaced by the next candidate in its fallback chain, ending at a
// built-in face, with a warning logged. Generation never fails because of
// a font.
package fonts

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"

	"github.com/ericfitz/tmi-report/layout"
	"github.com/ericfitz/tmi-report/observability"
)

// Built-in font families available without embedding.
const (
	builtinText = "Helvetica"
	builtinMono = "Courier"
)

// ErrNotLoaded is returned when a face is requested before Load has run.
// That is a programming error in the caller, not a condition to recover
// from at runtime.
var ErrNotLoaded = errors.New("fonts: face requested before Load")

// Manager embeds fonts into one document and hands out measurable faces.
// Font program bytes are cached by path for the manager's lifetime, so a
// file shared between variants or languages is fetched once.
type Manager struct {
	doc    *fpdf.Fpdf
	source Source
	log    observability.Logger
	cache  map[string][]byte
	set    *Set
}

// NewManager creates a manager for doc. source may be nil, in which case
// every language falls back to the built-in faces.
func NewManager(doc *fpdf.Fpdf, source Source, log observability.Logger) *Manager {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Manager{doc: doc, source: source, log: log, cache: make(map[string][]byte)}
}

// Set holds the four faces embedded for one document.
type Set struct {
	regular layout.Face
	bold    layout.Face
	italic  layout.Face
	mono    layout.Face
	rtl     bool
}

// Face returns the face for a style variant.
func (s *Set) Face(v layout.Variant) layout.Face {
	switch v {
	case layout.Bold:
		return s.bold
	case layout.Italic:
		return s.italic
	case layout.Mono:
		return s.mono
	default:
		return s.regular
	}
}

// RTL reports whether the loaded language is written right to left.
func (s *Set) RTL() bool { return s.rtl }

// Load resolves the font configuration for lang and embeds the four
// variants into the document. Regular and italic walk the language's
// fallback chain; bold uses the built-in bold face for Latin-script
// languages and the embedded regular program otherwise, so complex
// scripts render bold text at regular weight; monospace always uses the
// built-in typewriter face. Load only fails when the document itself has
// entered an error state.
func (m *Manager) Load(ctx context.Context, lang string) (*Set, error) {
	cfg := ConfigFor(lang)

	regularPaths := append([]string{cfg.RegularFile}, cfg.Fallbacks...)
	regular, regularData := m.embedVariant(ctx, lang, cfg.Family, "", regularPaths)

	italicPaths := regularPaths
	if cfg.ItalicFile != "" {
		italicPaths = append([]string{cfg.ItalicFile}, regularPaths...)
	}
	italic, _ := m.embedVariant(ctx, lang, cfg.Family, "I", italicPaths)

	var bold layout.Face
	switch {
	case cfg.Script == Latin:
		bold = face{doc: m.doc, family: builtinText, style: "B"}
	case regularData != nil:
		m.doc.AddUTF8FontFromBytes(cfg.Family, "B", regularData)
		bold = face{doc: m.doc, family: cfg.Family, style: "B"}
	default:
		bold = face{doc: m.doc, family: builtinText, style: "B"}
	}

	mono := face{doc: m.doc, family: builtinMono, style: ""}

	if m.doc.Err() {
		return nil, fmt.Errorf("fonts: embedding failed: %w", m.doc.Error())
	}

	set := &Set{regular: regular, bold: bold, italic: italic, mono: mono, rtl: cfg.RTL}
	m.set = set
	return set, nil
}

// Face returns the embedded face for v, failing fast when Load has not
// completed.
func (m *Manager) Face(v layout.Variant) (layout.Face, error) {
	if m.set == nil {
		return nil, ErrNotLoaded
	}
	return m.set.Face(v), nil
}

// embedVariant walks paths until one yields a valid font program, embeds
// it under family/style and returns the face plus the embedded bytes. When
// the whole chain fails it returns a built-in face and nil bytes.
func (m *Manager) embedVariant(ctx context.Context, lang, family, style string, paths []string) (layout.Face, []byte) {
	variant := variantName(style)
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := m.fetch(ctx, path)
		if err != nil {
			m.log.Warn("font fetch failed",
				observability.String(observability.FieldLanguage, lang),
				observability.String(observability.FieldVariant, variant),
				observability.String(observability.FieldFontFile, path),
				observability.Error("error", err))
			continue
		}
		fnt, err := validate(data)
		if err != nil {
			m.log.Warn("font rejected",
				observability.String(observability.FieldLanguage, lang),
				observability.String(observability.FieldVariant, variant),
				observability.String(observability.FieldFontFile, path),
				observability.Error("error", err))
			continue
		}
		m.doc.AddUTF8FontFromBytes(family, style, data)
		m.log.Debug("font embedded",
			observability.String(observability.FieldVariant, variant),
			observability.String(observability.FieldFontFile, path),
			observability.String("postscript_name", postScriptName(fnt)))
		return face{doc: m.doc, family: family, style: style}, data
	}

	fallback := builtinText
	m.log.Warn("using built-in font",
		observability.String(observability.FieldLanguage, lang),
		observability.String(observability.FieldVariant, variant),
		observability.String(observability.FieldFontFile, fallback))
	return face{doc: m.doc, family: fallback, style: style}, nil
}

func (m *Manager) fetch(ctx context.Context, path string) ([]byte, error) {
	if data, ok := m.cache[path]; ok {
		return data, nil
	}
	if m.source == nil {
		return nil, errors.New("no font source configured")
	}
	data, err := m.source.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	m.cache[path] = data
	return data, nil
}

// validate parses the font program, rejecting anything the PDF layer
// would choke on after embedding.
func validate(data []byte) (*sfnt.Font, error) {
	if len(data) == 0 {
		return nil, errors.New("font data is empty")
	}
	fnt, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if fnt.UnitsPerEm() == 0 {
		return nil, errors.New("invalid unitsPerEm")
	}
	return fnt, nil
}

func postScriptName(fnt *sfnt.Font) string {
	var buf sfnt.Buffer
	name, err := fnt.Name(&buf, sfnt.NameIDPostScript)
	if err != nil {
		return ""
	}
	return name
}

func variantName(style string) string {
	switch style {
	case "B":
		return layout.Bold.String()
	case "I":
		return layout.Italic.String()
	default:
		return layout.Regular.String()
	}
}

// face measures through the document's font metrics.
type face struct {
	doc    *fpdf.Fpdf
	family string
	style  string
}

func (f face) Width(text string, size float64) float64 {
	f.doc.SetFont(f.family, f.style, size)
	return f.doc.GetStringWidth(text)
}

func (f face) Family() string { return f.family }
func (f face) Style() string  { return f.style }
