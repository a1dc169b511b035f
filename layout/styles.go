package layout

// Variant selects one of the four faces every document embeds.
type Variant int

const (
	Regular Variant = iota
	Bold
	Italic
	Mono
)

// String returns the variant name used in log fields.
func (v Variant) String() string {
	switch v {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Mono:
		return "mono"
	default:
		return "regular"
	}
}

// Color is an opaque RGB color. The zero value is black.
type Color struct {
	R, G, B uint8
}

// Style describes how a run of text is drawn. LineHeight is the absolute
// advance per line in points; when zero, Leading derives it from the font
// size. SpaceBefore and SpaceAfter are block-level gaps consumed by the
// renderers, not by the engine's line primitives.
type Style struct {
	Variant     Variant
	FontSize    float64
	LineHeight  float64
	Color       Color
	SpaceBefore float64
	SpaceAfter  float64
}

// Leading returns the vertical advance of one line in this style.
func (s Style) Leading() float64 {
	if s.LineHeight > 0 {
		return s.LineHeight
	}
	return s.FontSize * 1.2
}

// The named styles used across the report. Sizes are in points.
var (
	StyleTitle       = Style{Variant: Bold, FontSize: 24, LineHeight: 30, SpaceAfter: 18}
	StyleSubtitle    = Style{Variant: Regular, FontSize: 13, LineHeight: 18, SpaceAfter: 10, Color: Color{R: 96, G: 96, B: 96}}
	StyleHeading1    = Style{Variant: Bold, FontSize: 18, LineHeight: 23, SpaceBefore: 14, SpaceAfter: 8}
	StyleHeading2    = Style{Variant: Bold, FontSize: 15, LineHeight: 19, SpaceBefore: 12, SpaceAfter: 6}
	StyleHeading3    = Style{Variant: Bold, FontSize: 13, LineHeight: 17, SpaceBefore: 10, SpaceAfter: 5}
	StyleBody        = Style{Variant: Regular, FontSize: 11, LineHeight: 15}
	StyleLabel       = Style{Variant: Bold, FontSize: 11, LineHeight: 15}
	StyleValue       = Style{Variant: Regular, FontSize: 11, LineHeight: 15}
	StyleTableHeader = Style{Variant: Bold, FontSize: 10, LineHeight: 14}
	StyleTableCell   = Style{Variant: Regular, FontSize: 10, LineHeight: 14}
	StyleCode        = Style{Variant: Mono, FontSize: 10, LineHeight: 13}
	StyleBlockquote  = Style{Variant: Italic, FontSize: 11, LineHeight: 15, Color: Color{R: 96, G: 96, B: 96}}
	StyleFooter      = Style{Variant: Regular, FontSize: 9, LineHeight: 11, Color: Color{R: 96, G: 96, B: 96}}
	StylePlaceholder = Style{Variant: Italic, FontSize: 11, LineHeight: 15, Color: Color{R: 128, G: 128, B: 128}}
)
