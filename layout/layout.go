// Package layout implements cursor-threaded pagination and text placement
// on top of a PDF document. Every drawing operation takes a Cursor and
// returns the advanced successor; no mutable position is shared between
// callers, so a layout pass is a plain fold over the content.
//
// Coordinates are PDF-native: points, origin at the bottom-left of the
// page, y growing upward. Conversion to the PDF library's top-down space
// happens only inside the drawing primitives.
package layout

import (
	"bytes"

	"codeberg.org/go-pdf/fpdf"
)

// Config fixes the page geometry for one document.
type Config struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	FooterHeight float64
}

// ContentWidth returns the horizontal space between the margins.
func (c Config) ContentWidth() float64 { return c.PageWidth - 2*c.Margin }

// TopBound returns the y coordinate content starts at on a fresh page.
func (c Config) TopBound() float64 { return c.PageHeight - c.Margin }

// BottomBound returns the y coordinate content may not cross. The band
// below it, FooterHeight points above the bottom margin, is reserved for
// the page footer drawn after generation completes.
func (c Config) BottomBound() float64 { return c.Margin + c.FooterHeight }

// Cursor is a drawing position: the page number and the y coordinate of
// the next line's top edge.
type Cursor struct {
	Page int
	Y    float64
}

// Engine owns pagination and text placement for one document. It appends
// pages to the document on behalf of whichever renderer currently holds
// the cursor.
type Engine struct {
	doc   *fpdf.Fpdf
	cfg   Config
	fonts FontSet
}

// NewEngine wraps an open document. The document's automatic page break
// must be disabled; the engine breaks pages itself.
func NewEngine(doc *fpdf.Fpdf, cfg Config, fonts FontSet) *Engine {
	return &Engine{doc: doc, cfg: cfg, fonts: fonts}
}

// Config returns the engine's page geometry.
func (e *Engine) Config() Config { return e.cfg }

// NewPage appends a page and returns a cursor at the top of it.
func (e *Engine) NewPage() Cursor {
	e.doc.AddPageFormat("P", fpdf.SizeType{Wd: e.cfg.PageWidth, Ht: e.cfg.PageHeight})
	return Cursor{Page: e.doc.PageNo(), Y: e.cfg.TopBound()}
}

// EnsureSpace returns cur unchanged when h points still fit above the
// footer band, otherwise a cursor on a fresh page. A cursor already at
// the top of a page stays put even when h exceeds the page capacity, so
// calling EnsureSpace twice with the same height never adds a second
// page.
func (e *Engine) EnsureSpace(cur Cursor, h float64) Cursor {
	if cur.Y-h < e.cfg.BottomBound() && cur.Y < e.cfg.TopBound() {
		return e.NewPage()
	}
	return cur
}

// Advance moves the cursor down by points, starting a new page when the
// result would cross into the footer band. The unconsumed remainder is
// not carried onto the new page.
func (e *Engine) Advance(cur Cursor, points float64) Cursor {
	y := cur.Y - points
	if y < e.cfg.BottomBound() {
		return e.NewPage()
	}
	return Cursor{Page: cur.Page, Y: y}
}

// Font returns the face for a style variant.
func (e *Engine) Font(v Variant) Face { return e.fonts.Face(v) }

// TextWidth measures text in the style's face.
func (e *Engine) TextWidth(text string, st Style) float64 {
	return e.fonts.Face(st.Variant).Width(text, st.FontSize)
}

// DrawTextLine draws one prewrapped line whose top edge sits at y on the
// document's current page. No page-break check is performed.
func (e *Engine) DrawTextLine(text string, x, y float64, st Style) {
	if text == "" {
		return
	}
	face := e.fonts.Face(st.Variant)
	e.doc.SetFont(face.Family(), face.Style(), st.FontSize)
	e.doc.SetTextColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
	e.doc.Text(x, e.cfg.PageHeight-y+st.FontSize, text)
}

// FillRect fills the rectangle whose top edge sits at y.
func (e *Engine) FillRect(x, y, w, h float64, c Color) {
	e.doc.SetFillColor(int(c.R), int(c.G), int(c.B))
	e.doc.Rect(x, e.cfg.PageHeight-y, w, h, "F")
}

// StrokeLine draws a straight line between two points.
func (e *Engine) StrokeLine(x1, y1, x2, y2, width float64, c Color) {
	e.doc.SetDrawColor(int(c.R), int(c.G), int(c.B))
	e.doc.SetLineWidth(width)
	e.doc.Line(x1, e.cfg.PageHeight-y1, x2, e.cfg.PageHeight-y2)
}

// RegisterImage loads PNG bytes into the document under name. Placing
// the same name twice reuses the registered data.
func (e *Engine) RegisterImage(name string, data []byte) {
	e.doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(data))
}

// DrawImage places a registered image with its top-left corner at (x, y).
func (e *Engine) DrawImage(name string, x, y, w, h float64) {
	e.doc.ImageOptions(name, x, e.cfg.PageHeight-y, w, h, false, fpdf.ImageOptions{ImageType: "png"}, 0, "")
}

// DrawRule draws a horizontal rule across the content width starting at
// indent, consuming a fixed band of vertical space.
func (e *Engine) DrawRule(cur Cursor, indent float64) Cursor {
	const band = 10.0
	cur = e.EnsureSpace(cur, band)
	y := cur.Y - band/2
	e.StrokeLine(e.cfg.Margin+indent, y, e.cfg.PageWidth-e.cfg.Margin, y, 0.5, Color{R: 180, G: 180, B: 180})
	return e.Advance(cur, band)
}

// DrawWrappedText wraps text into the content width minus indent and
// draws it line by line with a page-break check before each line. It
// returns the cursor below the last line.
func (e *Engine) DrawWrappedText(cur Cursor, text string, st Style, indent float64) Cursor {
	face := e.fonts.Face(st.Variant)
	lines := WrapText(text, face, st.FontSize, e.cfg.ContentWidth()-indent)
	for _, line := range lines {
		cur = e.EnsureSpace(cur, st.Leading())
		e.DrawTextLine(line, e.cfg.Margin+indent, cur.Y, st)
		cur = e.Advance(cur, st.Leading())
	}
	return cur
}

// kvGap separates a key/value pair's label from its value.
const kvGap = 6.0

// DrawKeyValuePair draws a label and its value on one line when the value
// fits the remaining width, otherwise wraps the value with continuation
// lines aligned under the value's start column.
func (e *Engine) DrawKeyValuePair(cur Cursor, label, value string, labelStyle, valueStyle Style, indent float64) Cursor {
	leading := labelStyle.Leading()
	if vl := valueStyle.Leading(); vl > leading {
		leading = vl
	}
	labelX := e.cfg.Margin + indent
	valueX := labelX + e.TextWidth(label, labelStyle) + kvGap
	avail := e.cfg.PageWidth - e.cfg.Margin - valueX

	cur = e.EnsureSpace(cur, leading)
	e.DrawTextLine(label, labelX, cur.Y, labelStyle)

	face := e.fonts.Face(valueStyle.Variant)
	if face.Width(value, valueStyle.FontSize) <= avail {
		e.DrawTextLine(value, valueX, cur.Y, valueStyle)
		return e.Advance(cur, leading)
	}
	for i, line := range WrapText(value, face, valueStyle.FontSize, avail) {
		if i > 0 {
			cur = e.EnsureSpace(cur, leading)
		}
		e.DrawTextLine(line, valueX, cur.Y, valueStyle)
		cur = e.Advance(cur, leading)
	}
	return cur
}

// MeasureTextHeight returns the height DrawWrappedText would consume for
// text wrapped to maxWidth, without drawing anything.
func (e *Engine) MeasureTextHeight(text string, st Style, maxWidth float64) float64 {
	lines := WrapText(text, e.fonts.Face(st.Variant), st.FontSize, maxWidth)
	return float64(len(lines)) * st.Leading()
}
