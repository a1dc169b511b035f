package markdown

import (
	"testing"
)

func compileString(t *testing.T, source string) []Block {
	t.Helper()
	return Compile([]byte(source), nil)
}

func inlineString(inlines []Inline) string {
	var out string
	for _, in := range inlines {
		switch n := in.(type) {
		case Text:
			out += n.Content
		case Escape:
			out += n.Content
		case CodeSpan:
			out += n.Content
		case Strong:
			out += inlineString(n.Children)
		case Em:
			out += inlineString(n.Children)
		case Link:
			out += inlineString(n.Label)
		}
	}
	return out
}

func TestCompileEmpty(t *testing.T) {
	if blocks := compileString(t, ""); len(blocks) != 0 {
		t.Errorf("blocks = %v, want none", blocks)
	}
}

func TestCompileHeading(t *testing.T) {
	blocks := compileString(t, "## Section Title")
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	h, ok := blocks[0].(Heading)
	if !ok {
		t.Fatalf("block = %T, want Heading", blocks[0])
	}
	if h.Level != 2 {
		t.Errorf("level = %d, want 2", h.Level)
	}
	if got := inlineString(h.Inlines); got != "Section Title" {
		t.Errorf("text = %q", got)
	}
}

func TestCompileSpaceBetweenSiblings(t *testing.T) {
	blocks := compileString(t, "first paragraph\n\nsecond paragraph")
	want := []string{"Paragraph", "Space", "Paragraph"}
	if len(blocks) != len(want) {
		t.Fatalf("blocks = %#v, want %v", blocks, want)
	}
	if _, ok := blocks[1].(Space); !ok {
		t.Errorf("middle block = %T, want Space", blocks[1])
	}
}

func TestCompileSoftBreakJoinsWithSpace(t *testing.T) {
	blocks := compileString(t, "line one\nline two")
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1 (soft break is not a block boundary)", len(blocks))
	}
	p := blocks[0].(Paragraph)
	if got := inlineString(p.Inlines); got != "line one line two" {
		t.Errorf("joined text = %q", got)
	}
}

func TestCompileHardBreak(t *testing.T) {
	blocks := compileString(t, "line one  \nline two")
	p := blocks[0].(Paragraph)
	found := false
	for _, in := range p.Inlines {
		if _, ok := in.(Break); ok {
			found = true
		}
	}
	if !found {
		t.Error("expected a Break token in the paragraph")
	}
}

func TestCompileInlineStyles(t *testing.T) {
	blocks := compileString(t, "a **b** c *d* e `f`")
	p := blocks[0].(Paragraph)

	var kinds []string
	for _, in := range p.Inlines {
		switch in.(type) {
		case Text:
			kinds = append(kinds, "text")
		case Strong:
			kinds = append(kinds, "strong")
		case Em:
			kinds = append(kinds, "em")
		case CodeSpan:
			kinds = append(kinds, "codespan")
		default:
			kinds = append(kinds, "other")
		}
	}
	want := []string{"text", "strong", "text", "em", "text", "codespan"}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range kinds {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestCompileLink(t *testing.T) {
	blocks := compileString(t, "[docs](https://example.com/docs)")
	p := blocks[0].(Paragraph)
	l, ok := p.Inlines[0].(Link)
	if !ok {
		t.Fatalf("inline = %T, want Link", p.Inlines[0])
	}
	if l.URL != "https://example.com/docs" {
		t.Errorf("url = %q", l.URL)
	}
	if got := inlineString(l.Label); got != "docs" {
		t.Errorf("label = %q", got)
	}
}

func TestCompileAutoLinkLabelEqualsURL(t *testing.T) {
	blocks := compileString(t, "see <https://example.com>")
	p := blocks[0].(Paragraph)
	var link Link
	found := false
	for _, in := range p.Inlines {
		if l, ok := in.(Link); ok {
			link, found = l, true
		}
	}
	if !found {
		t.Fatal("expected a Link token")
	}
	if inlineString(link.Label) != link.URL {
		t.Errorf("autolink label %q != url %q", inlineString(link.Label), link.URL)
	}
}

func TestCompileEntityBecomesEscape(t *testing.T) {
	blocks := compileString(t, "5 &lt; 6")
	p := blocks[0].(Paragraph)
	found := false
	for _, in := range p.Inlines {
		if e, ok := in.(Escape); ok && e.Content == "<" {
			found = true
		}
	}
	if !found {
		t.Errorf("inlines = %#v, want an Escape token with %q", p.Inlines, "<")
	}
}

func TestCompileFencedCode(t *testing.T) {
	blocks := compileString(t, "```\nfoo\n\nbar\n```")
	cb, ok := blocks[0].(CodeBlock)
	if !ok {
		t.Fatalf("block = %T, want CodeBlock", blocks[0])
	}
	want := []string{"foo", "", "bar"}
	if len(cb.Lines) != len(want) {
		t.Fatalf("lines = %q, want %q", cb.Lines, want)
	}
	for i := range want {
		if cb.Lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, cb.Lines[i], want[i])
		}
	}
}

func TestCompileUnorderedList(t *testing.T) {
	blocks := compileString(t, "- one\n- two\n- three")
	l, ok := blocks[0].(List)
	if !ok {
		t.Fatalf("block = %T, want List", blocks[0])
	}
	if l.Ordered {
		t.Error("list should be unordered")
	}
	if len(l.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(l.Items))
	}
	if got := inlineString(l.Items[1]); got != "two" {
		t.Errorf("item 1 = %q", got)
	}
}

func TestCompileOrderedListStart(t *testing.T) {
	blocks := compileString(t, "4. four\n5. five")
	l := blocks[0].(List)
	if !l.Ordered || l.Start != 4 {
		t.Errorf("ordered = %v start = %d, want ordered from 4", l.Ordered, l.Start)
	}
}

func TestCompileNestedListFlattens(t *testing.T) {
	blocks := compileString(t, "- outer\n  - inner one\n  - inner two\n- next")
	l := blocks[0].(List)
	if len(l.Items) != 2 {
		t.Fatalf("items = %d, want 2 (nested list folds into its parent)", len(l.Items))
	}
	if got := inlineString(l.Items[0]); got != "outer inner one inner two" {
		t.Errorf("flattened item = %q", got)
	}
}

func TestCompileBlockquoteDirectParagraphsOnly(t *testing.T) {
	blocks := compileString(t, "> quoted text\n>\n> second paragraph\n> - a list inside")
	q, ok := blocks[0].(Blockquote)
	if !ok {
		t.Fatalf("block = %T, want Blockquote", blocks[0])
	}
	if len(q.Paragraphs) != 2 {
		t.Fatalf("paragraphs = %d, want 2 (the nested list is dropped)", len(q.Paragraphs))
	}
	if got := inlineString(q.Paragraphs[0]); got != "quoted text" {
		t.Errorf("first paragraph = %q", got)
	}
}

func TestCompileThematicBreak(t *testing.T) {
	blocks := compileString(t, "above\n\n---\n\nbelow")
	found := false
	for _, b := range blocks {
		if _, ok := b.(Rule); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("blocks = %#v, want a Rule", blocks)
	}
}

func TestCompileSkipsPipeTable(t *testing.T) {
	blocks := compileString(t, "| a | b |\n|---|---|\n| 1 | 2 |")
	if len(blocks) != 0 {
		t.Errorf("blocks = %#v, want table skipped entirely", blocks)
	}
}

func TestCompileSkipsHTMLBlock(t *testing.T) {
	blocks := compileString(t, "<div>\nraw\n</div>")
	for _, b := range blocks {
		if _, ok := b.(Space); !ok {
			t.Errorf("unexpected block %T from html input", b)
		}
	}
}
