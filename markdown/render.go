package markdown

import (
	"strconv"
	"strings"

	"github.com/ericfitz/tmi-report/layout"
	"github.com/ericfitz/tmi-report/observability"
)

// Spacing in points.
const (
	spaceAdvance = 8.0
	listIndent   = 10.0
	codeIndent   = 12.0
	quoteIndent  = 18.0
	quoteGap     = 6.0
)

// Renderer draws compiled markdown through a layout engine.
type Renderer struct {
	engine *layout.Engine
	log    observability.Logger
}

// NewRenderer creates a renderer on top of engine.
func NewRenderer(engine *layout.Engine, log observability.Logger) *Renderer {
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Renderer{engine: engine, log: log}
}

// Render compiles source and draws it starting at cur, returning the
// cursor below the last block. Empty or whitespace-only input is a no-op
// and returns cur unchanged.
func (r *Renderer) Render(cur layout.Cursor, source string) layout.Cursor {
	if strings.TrimSpace(source) == "" {
		return cur
	}
	for _, blk := range Compile([]byte(source), r.log) {
		cur = r.renderBlock(cur, blk)
	}
	return cur
}

func (r *Renderer) renderBlock(cur layout.Cursor, blk Block) layout.Cursor {
	switch b := blk.(type) {
	case Heading:
		st := headingStyle(b.Level)
		cur = r.engine.Advance(cur, st.SpaceBefore)
		cur = r.drawMixed(cur, flatten(b.Inlines, st.Variant), st, 0)
		return r.engine.Advance(cur, st.SpaceAfter)
	case Paragraph:
		return r.drawMixed(cur, flatten(b.Inlines, layout.Regular), layout.StyleBody, 0)
	case CodeBlock:
		return r.renderCode(cur, b)
	case List:
		return r.renderList(cur, b)
	case Blockquote:
		return r.renderQuote(cur, b)
	case Rule:
		return r.engine.DrawRule(cur, 0)
	case Space:
		return r.engine.Advance(cur, spaceAdvance)
	default:
		return cur
	}
}

// headingStyle maps the six markdown levels onto the three heading
// styles; everything past level three collapses to the smallest.
func headingStyle(level int) layout.Style {
	switch level {
	case 1:
		return layout.StyleHeading1
	case 2:
		return layout.StyleHeading2
	default:
		return layout.StyleHeading3
	}
}

func (r *Renderer) renderCode(cur layout.Cursor, b CodeBlock) layout.Cursor {
	st := layout.StyleCode
	for _, line := range b.Lines {
		if strings.TrimSpace(line) == "" {
			cur = r.engine.Advance(cur, st.Leading())
			continue
		}
		cur = r.engine.EnsureSpace(cur, st.Leading())
		r.engine.DrawTextLine(line, r.engine.Config().Margin+codeIndent, cur.Y, st)
		cur = r.engine.Advance(cur, st.Leading())
	}
	return cur
}

func (r *Renderer) renderList(cur layout.Cursor, b List) layout.Cursor {
	st := layout.StyleBody
	for i, item := range b.Items {
		prefix := "• "
		if b.Ordered {
			n := b.Start
			if n <= 0 {
				n = 1
			}
			prefix = strconv.Itoa(n+i) + ". "
		}
		cur = r.engine.EnsureSpace(cur, st.Leading())
		r.engine.DrawTextLine(prefix, r.engine.Config().Margin+listIndent, cur.Y, st)
		textIndent := listIndent + r.engine.TextWidth(prefix, st)
		cur = r.drawMixed(cur, flatten(item, layout.Regular), st, textIndent)
	}
	return cur
}

func (r *Renderer) renderQuote(cur layout.Cursor, b Blockquote) layout.Cursor {
	st := layout.StyleBlockquote
	for i, para := range b.Paragraphs {
		if i > 0 {
			cur = r.engine.Advance(cur, quoteGap)
		}
		cur = r.drawMixed(cur, flatten(para, st.Variant), st, quoteIndent)
	}
	return cur
}

// segment is one styled run of text ready for line packing.
type segment struct {
	text      string
	variant   layout.Variant
	lineBreak bool
}

// flatten reduces an inline tree to drawable segments. The wrapper nodes
// override the inherited variant downward, so the innermost style wins.
func flatten(inlines []Inline, outer layout.Variant) []segment {
	var segs []segment
	for _, in := range inlines {
		switch n := in.(type) {
		case Text:
			segs = append(segs, segment{text: n.Content, variant: outer})
		case Escape:
			segs = append(segs, segment{text: n.Content, variant: outer})
		case Strong:
			segs = append(segs, flatten(n.Children, layout.Bold)...)
		case Em:
			segs = append(segs, flatten(n.Children, layout.Italic)...)
		case CodeSpan:
			segs = append(segs, segment{text: n.Content, variant: layout.Mono})
		case Link:
			label := flatten(n.Label, outer)
			if segmentText(label) == n.URL {
				segs = append(segs, segment{text: n.URL, variant: outer})
			} else {
				segs = append(segs, label...)
				segs = append(segs, segment{text: " (" + n.URL + ")", variant: outer})
			}
		case Break:
			segs = append(segs, segment{lineBreak: true})
		}
	}
	return segs
}

func segmentText(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

// mergeSegments coalesces adjacent runs that share a variant, so a word
// split across inline tokens is measured and packed as one word.
func mergeSegments(segs []segment) []segment {
	var out []segment
	for _, s := range segs {
		if len(out) > 0 && !s.lineBreak {
			if prev := &out[len(out)-1]; !prev.lineBreak && prev.variant == s.variant {
				prev.text += s.text
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// drawMixed packs styled words into lines, measuring every word in its
// own face, and draws each full line with a page-break check. A word
// wider than the content column falls back to rune-level splitting.
func (r *Renderer) drawMixed(cur layout.Cursor, segs []segment, base layout.Style, indent float64) layout.Cursor {
	maxWidth := r.engine.Config().ContentWidth() - indent
	x := r.engine.Config().Margin + indent
	leading := base.Leading()

	type word struct {
		text  string
		st    layout.Style
		width float64
		gap   float64
	}

	var line []word
	lineWidth := 0.0

	flush := func() {
		if len(line) == 0 {
			return
		}
		cur = r.engine.EnsureSpace(cur, leading)
		wx := x
		for i, w := range line {
			if i > 0 {
				wx += w.gap
			}
			r.engine.DrawTextLine(w.text, wx, cur.Y, w.st)
			wx += w.width
		}
		cur = r.engine.Advance(cur, leading)
		line = line[:0]
		lineWidth = 0
	}

	for _, seg := range mergeSegments(segs) {
		if seg.lineBreak {
			flush()
			continue
		}
		st := base
		st.Variant = seg.variant
		for _, token := range strings.Fields(seg.text) {
			w := r.engine.TextWidth(token, st)
			gap := 0.0
			if len(line) > 0 {
				gap = r.engine.TextWidth(" ", st)
				if lineWidth+gap+w > maxWidth {
					flush()
					gap = 0
				}
			}
			if w > maxWidth {
				frags := layout.WrapText(token, r.engine.Font(st.Variant), st.FontSize, maxWidth)
				for _, frag := range frags[:len(frags)-1] {
					line = append(line, word{text: frag, st: st, width: r.engine.TextWidth(frag, st)})
					flush()
				}
				token = frags[len(frags)-1]
				w = r.engine.TextWidth(token, st)
				gap = 0
			}
			line = append(line, word{text: token, st: st, width: w, gap: gap})
			lineWidth += gap + w
		}
	}
	flush()
	return cur
}
