// Package table draws column tables through the layout engine. Rows are
// measured before they are drawn so a row never straddles a page break;
// when a row forces a new page the header band is drawn again on top.
package table

import (
	"github.com/ericfitz/tmi-report/layout"
	"github.com/ericfitz/tmi-report/observability"
)

// Column describes one table column. Proportion is the share of the
// content width the column occupies. The shares are taken literally and
// not rescaled, so callers control overflow by keeping the sum at or
// below one.
type Column struct {
	Title      string
	Proportion float64
}

const (
	cellPadX = 4.0
	cellPadY = 3.0

	ellipsis = "…"
)

var (
	headerFill     = layout.Color{R: 236, G: 236, B: 236}
	headerRule     = layout.Color{R: 140, G: 140, B: 140}
	rowSeparator   = layout.Color{R: 205, G: 205, B: 205}
	headerRuleSize = 0.7
	separatorSize  = 0.35
)

// Renderer draws tables positioned by a layout cursor.
type Renderer struct {
	engine *layout.Engine
	log    observability.Logger
}

func NewRenderer(engine *layout.Engine, log observability.Logger) *Renderer {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Renderer{engine: engine, log: log}
}

// Draw renders the header band and all rows starting at cur and returns
// the cursor below the table. With no rows only the header is drawn.
func (r *Renderer) Draw(cur layout.Cursor, cols []Column, rows [][]string) layout.Cursor {
	if len(cols) == 0 {
		return cur
	}
	widths := columnWidths(cols, r.engine.Config().ContentWidth())

	// Keep the header attached to the first row across page breaks.
	need := r.headerHeight()
	if len(rows) > 0 {
		need += r.rowHeight(rows[0], widths)
	}
	cur = r.engine.EnsureSpace(cur, need)
	cur = r.drawHeader(cur, cols, widths)

	for _, row := range rows {
		h := r.rowHeight(row, widths)
		if cur.Y-h < r.engine.Config().BottomBound() {
			cur = r.engine.NewPage()
			cur = r.drawHeader(cur, cols, widths)
		}
		cur = r.drawRow(cur, row, widths, h)
	}
	return cur
}

// columnWidths resolves the literal point width of every column.
func columnWidths(cols []Column, contentWidth float64) []float64 {
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = c.Proportion * contentWidth
	}
	return widths
}

func (r *Renderer) headerHeight() float64 {
	return layout.StyleTableHeader.Leading() + 2*cellPadY
}

func (r *Renderer) rowHeight(row []string, widths []float64) float64 {
	st := layout.StyleTableCell
	maxH := st.Leading()
	for i, w := range widths {
		if i >= len(row) {
			break
		}
		if h := r.engine.MeasureTextHeight(row[i], st, w-2*cellPadX); h > maxH {
			maxH = h
		}
	}
	return maxH + 2*cellPadY
}

func (r *Renderer) drawHeader(cur layout.Cursor, cols []Column, widths []float64) layout.Cursor {
	st := layout.StyleTableHeader
	h := r.headerHeight()
	left := r.engine.Config().Margin
	total := 0.0
	for _, w := range widths {
		total += w
	}

	r.engine.FillRect(left, cur.Y, total, h, headerFill)

	x := left
	for i, col := range cols {
		title := truncateToWidth(col.Title, r.engine.Font(st.Variant), st.FontSize, widths[i]-2*cellPadX)
		r.engine.DrawTextLine(title, x+cellPadX, cur.Y-cellPadY, st)
		x += widths[i]
	}

	r.engine.StrokeLine(left, cur.Y-h, left+total, cur.Y-h, headerRuleSize, headerRule)
	return r.engine.Advance(cur, h)
}

func (r *Renderer) drawRow(cur layout.Cursor, row []string, widths []float64, h float64) layout.Cursor {
	st := layout.StyleTableCell
	left := r.engine.Config().Margin
	total := 0.0
	for _, w := range widths {
		total += w
	}

	x := left
	for i, w := range widths {
		if i >= len(row) {
			break
		}
		y := cur.Y - cellPadY
		for _, line := range layout.WrapText(row[i], r.engine.Font(st.Variant), st.FontSize, w-2*cellPadX) {
			r.engine.DrawTextLine(line, x+cellPadX, y, st)
			y -= st.Leading()
		}
		x += w
	}

	r.engine.StrokeLine(left, cur.Y-h, left+total, cur.Y-h, separatorSize, rowSeparator)
	return r.engine.Advance(cur, h)
}

// truncateToWidth returns the longest prefix of text that fits in
// maxWidth once the ellipsis is appended. Text that already fits passes
// through unchanged. The cut point is found by binary search over the
// rune count.
func truncateToWidth(text string, face layout.Face, size, maxWidth float64) string {
	if face.Width(text, size) <= maxWidth {
		return text
	}
	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if face.Width(string(runes[:mid])+ellipsis, size) <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return string(runes[:lo]) + ellipsis
}
