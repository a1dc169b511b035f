package table

import (
	"bytes"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ericfitz/tmi-report/layout"
)

// coreFace measures with the document's built-in font metrics, which are
// available without embedding any font program.
type coreFace struct {
	doc           *fpdf.Fpdf
	family, style string
}

func (f coreFace) Width(text string, size float64) float64 {
	f.doc.SetFont(f.family, f.style, size)
	return f.doc.GetStringWidth(text)
}
func (f coreFace) Family() string { return f.family }
func (f coreFace) Style() string  { return f.style }

type coreFonts struct{ doc *fpdf.Fpdf }

func (c coreFonts) Face(v layout.Variant) layout.Face {
	switch v {
	case layout.Bold:
		return coreFace{c.doc, "Helvetica", "B"}
	case layout.Italic:
		return coreFace{c.doc, "Helvetica", "I"}
	case layout.Mono:
		return coreFace{c.doc, "Courier", ""}
	default:
		return coreFace{c.doc, "Helvetica", ""}
	}
}

// fixedFace gives every rune the same advance, half the font size.
type fixedFace struct{}

func (fixedFace) Width(text string, size float64) float64 {
	return float64(len([]rune(text))) * 0.5 * size
}
func (fixedFace) Family() string { return "Fixed" }
func (fixedFace) Style() string  { return "" }

func newTestRenderer(t *testing.T) (*Renderer, *layout.Engine, *fpdf.Fpdf) {
	t.Helper()
	cfg := layout.Config{PageWidth: 612, PageHeight: 792, Margin: 54, FooterHeight: 20}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	engine := layout.NewEngine(doc, cfg, coreFonts{doc})
	return NewRenderer(engine, nil), engine, doc
}

func TestColumnWidthsLiteral(t *testing.T) {
	cases := []struct {
		name        string
		proportions []float64
		content     float64
		want        []float64
	}{
		{"exact", []float64{0.5, 0.3, 0.2}, 500, []float64{250, 150, 100}},
		{"under full width", []float64{0.25, 0.25}, 400, []float64{100, 100}},
		{"over full width", []float64{0.8, 0.8}, 400, []float64{320, 320}},
	}
	for _, tc := range cases {
		cols := make([]Column, len(tc.proportions))
		for i, p := range tc.proportions {
			cols[i] = Column{Proportion: p}
		}
		got := columnWidths(cols, tc.content)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: widths = %v, want %v", tc.name, got, tc.want)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("%s: width %d = %v, want %v", tc.name, i, got[i], tc.want[i])
			}
		}
	}
}

func TestTruncateToWidthPassThrough(t *testing.T) {
	if got := truncateToWidth("short", fixedFace{}, 10, 50); got != "short" {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestTruncateToWidthCutsAtFit(t *testing.T) {
	text := "abcdefghijklmnopqrst"
	got := truncateToWidth(text, fixedFace{}, 10, 50)

	if !strings.HasSuffix(got, ellipsis) {
		t.Fatalf("got %q, want ellipsis suffix", got)
	}
	if w := (fixedFace{}).Width(got, 10); w > 50 {
		t.Errorf("truncated width = %v, want <= 50", w)
	}
	if got != "abcdefghi"+ellipsis {
		t.Errorf("got %q, want longest fitting prefix", got)
	}
}

func TestTruncateToWidthDegenerate(t *testing.T) {
	if got := truncateToWidth("anything", fixedFace{}, 10, 2); got != ellipsis {
		t.Errorf("got %q, want bare ellipsis", got)
	}
}

func TestDrawNoColumns(t *testing.T) {
	r, e, _ := newTestRenderer(t)
	cur := e.NewPage()
	if end := r.Draw(cur, nil, [][]string{{"x"}}); end != cur {
		t.Errorf("cursor = %+v, want unchanged %+v", end, cur)
	}
}

func TestDrawHeaderOnlyWithoutRows(t *testing.T) {
	r, e, _ := newTestRenderer(t)
	cur := e.NewPage()
	end := r.Draw(cur, []Column{{Title: "Name", Proportion: 0.5}, {Title: "Type", Proportion: 0.5}}, nil)

	want := layout.StyleTableHeader.Leading() + 2*cellPadY
	if got := cur.Y - end.Y; got != want {
		t.Errorf("header consumed %v, want %v", got, want)
	}
	if end.Page != cur.Page {
		t.Errorf("page = %d, want %d", end.Page, cur.Page)
	}
}

func TestDrawRowHeightFromTallestCell(t *testing.T) {
	r, e, _ := newTestRenderer(t)
	cur := e.NewPage()

	cols := []Column{{Title: "Name", Proportion: 0.3}, {Title: "Description", Proportion: 0.7}}
	long := strings.TrimSpace(strings.Repeat("wrapping words fill the cell ", 6))
	end := r.Draw(cur, cols, [][]string{{"api", long}})

	widths := columnWidths(cols, e.Config().ContentWidth())
	tallest := e.MeasureTextHeight(long, layout.StyleTableCell, widths[1]-2*cellPadX)
	if tallest <= layout.StyleTableCell.Leading() {
		t.Fatal("fixture text must wrap to more than one line")
	}
	want := r.headerHeight() + tallest + 2*cellPadY
	if got := cur.Y - end.Y; got != want {
		t.Errorf("table consumed %v, want %v", got, want)
	}
}

func TestDrawRaggedRows(t *testing.T) {
	r, e, _ := newTestRenderer(t)
	cur := e.NewPage()

	cols := []Column{{Title: "A", Proportion: 0.5}, {Title: "B", Proportion: 0.5}}
	rows := [][]string{
		{"only one cell"},
		{"two", "cells"},
		{"three", "cells", "extra ignored"},
	}
	end := r.Draw(cur, cols, rows)

	rowH := layout.StyleTableCell.Leading() + 2*cellPadY
	want := r.headerHeight() + 3*rowH
	if got := cur.Y - end.Y; got != want {
		t.Errorf("table consumed %v, want %v", got, want)
	}
}

func TestDrawPaginatesLongTable(t *testing.T) {
	r, e, doc := newTestRenderer(t)
	doc.SetCompression(false)
	cur := e.NewPage()

	cols := []Column{{Title: "Inventory", Proportion: 0.4}, {Title: "Kind", Proportion: 0.6}}
	var rows [][]string
	for i := 0; i < 80; i++ {
		rows = append(rows, []string{"asset", "database"})
	}
	end := r.Draw(cur, cols, rows)

	if end.Page < 2 {
		t.Fatalf("table stayed on page %d, want a page break", end.Page)
	}
	if doc.PageCount() != end.Page {
		t.Errorf("PageCount = %d, cursor page = %d", doc.PageCount(), end.Page)
	}
	if end.Y < e.Config().BottomBound() {
		t.Errorf("cursor %v ended below the content bound %v", end.Y, e.Config().BottomBound())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if got := bytes.Count(buf.Bytes(), []byte("(Inventory)")); got != doc.PageCount() {
		t.Errorf("header drawn %d times across %d pages, want once per page", got, doc.PageCount())
	}
}

func TestDrawHeaderNotOrphaned(t *testing.T) {
	r, e, doc := newTestRenderer(t)
	e.NewPage()

	rowH := layout.StyleTableCell.Leading() + 2*cellPadY
	// Room for the header band alone but not the first row.
	low := layout.Cursor{Page: 1, Y: e.Config().BottomBound() + r.headerHeight() + 1}
	end := r.Draw(low, []Column{{Title: "Name", Proportion: 1}}, [][]string{{"row"}})

	if end.Page != 2 {
		t.Fatalf("page = %d, want the whole table moved to page 2", end.Page)
	}
	if want := e.Config().TopBound() - r.headerHeight() - rowH; end.Y != want {
		t.Errorf("cursor = %v, want %v", end.Y, want)
	}
	if doc.PageCount() != 2 {
		t.Errorf("PageCount = %d, want 2", doc.PageCount())
	}
}
