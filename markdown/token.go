// Package markdown compiles markdown source into a closed token
// vocabulary and draws it through the layout engine. The compiler lowers
// the parser's syntax tree to the block and inline sums below; the
// renderer dispatches on them exhaustively. Constructs outside the
// vocabulary (pipe tables, raw HTML, images) are skipped so arbitrary
// user content degrades gracefully instead of aborting a report.
package markdown

// Block is a block-level construct the renderer knows how to draw.
type Block interface{ block() }

// Heading is a heading block. Levels four through six share the smallest
// heading style.
type Heading struct {
	Level   int
	Inlines []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Inlines []Inline
}

// CodeBlock is a fenced or indented code block, one entry per source
// line, drawn verbatim in the monospace face.
type CodeBlock struct {
	Lines []string
}

// List is an ordered or unordered list. Each item holds its flattened
// inline content; nested lists are folded into the parent item's stream.
type List struct {
	Ordered bool
	Start   int
	Items   [][]Inline
}

// Blockquote holds the quote's direct paragraph children. Other nested
// structure inside the quote is dropped.
type Blockquote struct {
	Paragraphs [][]Inline
}

// Rule is a horizontal rule.
type Rule struct{}

// Space is a blank-line gap between sibling blocks, rendered as a fixed
// small vertical advance.
type Space struct{}

func (Heading) block()    {}
func (Paragraph) block()  {}
func (CodeBlock) block()  {}
func (List) block()       {}
func (Blockquote) block() {}
func (Rule) block()       {}
func (Space) block()      {}

// Inline is an inline construct inside a block.
type Inline interface{ inline() }

// Text is plain text.
type Text struct{ Content string }

// Strong renders its children in the bold face.
type Strong struct{ Children []Inline }

// Em renders its children in the italic face.
type Em struct{ Children []Inline }

// CodeSpan renders in the monospace face.
type CodeSpan struct{ Content string }

// Link renders as "label (url)", or as the bare URL when the label
// repeats it.
type Link struct {
	Label []Inline
	URL   string
}

// Break is a hard line break.
type Break struct{}

// Escape is literal text produced by backslash escapes and entity
// references.
type Escape struct{ Content string }

func (Text) inline()     {}
func (Strong) inline()   {}
func (Em) inline()       {}
func (CodeSpan) inline() {}
func (Link) inline()     {}
func (Break) inline()    {}
func (Escape) inline()   {}
