package report

import (
	"strings"

	"github.com/ericfitz/tmi-report/fonts"
	"github.com/ericfitz/tmi-report/i18n"
	"github.com/ericfitz/tmi-report/layout"
	"github.com/ericfitz/tmi-report/observability"
)

// PageSize selects the paper format.
type PageSize int

const (
	PageUSLetter PageSize = iota
	PageA4
)

// MarginSize selects the page margin width.
type MarginSize int

const (
	MarginStandard MarginSize = iota
	MarginNarrow
	MarginWide
)

// footerReserve is the vertical band kept free for the footer on every
// page, independent of the margin choice.
const footerReserve = 20.0

// ParsePageSize maps a preference string onto a PageSize. Unknown values
// fall back to US letter without complaint; preferences come from user
// profiles and must never block a report.
func ParsePageSize(s string) PageSize {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a4":
		return PageA4
	default:
		return PageUSLetter
	}
}

// ParseMarginSize maps a preference string onto a MarginSize, falling
// back to standard margins on unknown values.
func ParseMarginSize(s string) MarginSize {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrow":
		return MarginNarrow
	case "wide":
		return MarginWide
	default:
		return MarginStandard
	}
}

// Dimensions returns the page width and height in points.
func (p PageSize) Dimensions() (w, h float64) {
	if p == PageA4 {
		return 595, 842
	}
	return 612, 792
}

// Points returns the margin width in points.
func (m MarginSize) Points() float64 {
	switch m {
	case MarginNarrow:
		return 36
	case MarginWide:
		return 72
	default:
		return 54
	}
}

// layoutConfig resolves the preference enums into page geometry.
func layoutConfig(page PageSize, margin MarginSize) layout.Config {
	w, h := page.Dimensions()
	return layout.Config{
		PageWidth:    w,
		PageHeight:   h,
		Margin:       margin.Points(),
		FooterHeight: footerReserve,
	}
}

// Branding carries the optional classification strings and logo shipped
// by the hosting product. All fields may be empty.
type Branding struct {
	DataClassification     string
	ConfidentialityWarning string
	LogoPNG                []byte
}

// Options configures one report generation. The zero value produces an
// English US-letter report with standard margins, built-in fonts and no
// logging.
type Options struct {
	// PageSize and MarginSize are the raw preference strings
	// ("usLetter"/"A4", "narrow"/"standard"/"wide"). Invalid values
	// silently select the default.
	PageSize   string
	MarginSize string

	// Language is a TMI locale code such as "en-US" or "de". Unknown
	// codes use the default font configuration.
	Language string

	Branding Branding

	// Translate resolves UI strings. Nil selects the built-in English
	// catalog.
	Translate i18n.TranslateFunc

	// Fonts loads font programs by file name. Nil keeps every variant
	// on the built-in standard fonts.
	Fonts fonts.Source

	// Logger receives degraded-mode warnings and progress events. Nil
	// disables logging.
	Logger observability.Logger
}
