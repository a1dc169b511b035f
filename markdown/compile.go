package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ericfitz/tmi-report/observability"
)

// Compile parses source and lowers the syntax tree to the closed block
// vocabulary. The parser runs with the table extension enabled so pipe
// tables arrive as single nodes that can be skipped whole instead of
// degrading into paragraph soup.
func Compile(source []byte, log observability.Logger) []Block {
	if log == nil {
		log = observability.NopLogger{}
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(source))
	c := compiler{src: source, log: log}
	return c.blocks(root)
}

type compiler struct {
	src []byte
	log observability.Logger
}

func (c compiler) blocks(parent ast.Node) []Block {
	var out []Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if len(out) > 0 && child.HasBlankPreviousLines() {
			out = append(out, Space{})
		}
		switch n := child.(type) {
		case *ast.Heading:
			out = append(out, Heading{Level: n.Level, Inlines: c.inlines(n)})
		case *ast.Paragraph:
			out = append(out, Paragraph{Inlines: c.inlines(n)})
		case *ast.TextBlock:
			out = append(out, Paragraph{Inlines: c.inlines(n)})
		case *ast.FencedCodeBlock:
			out = append(out, CodeBlock{Lines: c.codeLines(n)})
		case *ast.CodeBlock:
			out = append(out, CodeBlock{Lines: c.codeLines(n)})
		case *ast.List:
			out = append(out, c.list(n))
		case *ast.Blockquote:
			out = append(out, c.quote(n))
		case *ast.ThematicBreak:
			out = append(out, Rule{})
		case *extast.Table:
			c.log.Debug("skipping markdown table")
		case *ast.HTMLBlock:
			c.log.Debug("skipping html block")
		default:
			c.log.Debug("skipping unsupported markdown block",
				observability.String("kind", child.Kind().String()))
		}
	}
	return out
}

func (c compiler) inlines(parent ast.Node) []Inline {
	var out []Inline
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			out = append(out, Text{Content: string(n.Segment.Value(c.src))})
			switch {
			case n.HardLineBreak():
				out = append(out, Break{})
			case n.SoftLineBreak():
				out = append(out, Text{Content: " "})
			}
		case *ast.String:
			out = append(out, Escape{Content: string(n.Value)})
		case *ast.Emphasis:
			if n.Level >= 2 {
				out = append(out, Strong{Children: c.inlines(n)})
			} else {
				out = append(out, Em{Children: c.inlines(n)})
			}
		case *ast.CodeSpan:
			out = append(out, CodeSpan{Content: c.rawText(n)})
		case *ast.Link:
			out = append(out, Link{Label: c.inlines(n), URL: string(n.Destination)})
		case *ast.AutoLink:
			label := string(n.Label(c.src))
			out = append(out, Link{Label: []Inline{Text{Content: label}}, URL: label})
		case *ast.Image:
			c.log.Debug("skipping markdown image")
		case *ast.RawHTML:
			c.log.Debug("skipping raw html")
		default:
			c.log.Debug("skipping unsupported inline",
				observability.String("kind", child.Kind().String()))
		}
	}
	return out
}

func (c compiler) list(n *ast.List) List {
	l := List{Ordered: n.IsOrdered(), Start: n.Start}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		l.Items = append(l.Items, c.itemInlines(item))
	}
	return l
}

// itemInlines flattens one list item, folding nested lists into the
// item's own inline stream with a space between the pieces.
func (c compiler) itemInlines(item ast.Node) []Inline {
	var out []Inline
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.TextBlock:
			out = appendWithGap(out, c.inlines(n))
		case *ast.Paragraph:
			out = appendWithGap(out, c.inlines(n))
		case *ast.List:
			for sub := n.FirstChild(); sub != nil; sub = sub.NextSibling() {
				out = appendWithGap(out, c.itemInlines(sub))
			}
		}
	}
	return out
}

func appendWithGap(dst, src []Inline) []Inline {
	if len(dst) > 0 && len(src) > 0 {
		dst = append(dst, Text{Content: " "})
	}
	return append(dst, src...)
}

// quote keeps only the quote's direct paragraph children.
func (c compiler) quote(n *ast.Blockquote) Blockquote {
	var q Blockquote
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if p, ok := child.(*ast.Paragraph); ok {
			q.Paragraphs = append(q.Paragraphs, c.inlines(p))
		}
	}
	return q
}

func (c compiler) codeLines(n ast.Node) []string {
	segs := n.Lines()
	lines := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		lines = append(lines, strings.TrimRight(string(seg.Value(c.src)), "\n"))
	}
	return lines
}

func (c compiler) rawText(n ast.Node) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(c.src))
		}
	}
	return b.String()
}
