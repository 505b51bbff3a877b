package kast

// InlineSeq is an ordered sequence of inline nodes, the result of C4
// running over one text run.
type InlineSeq []InlineNode

// InlineNode is the tagged sum type for inline-level AST variants.
type InlineNode interface {
	Span() Span
	inlineNode()
}

type inlineBase struct{ span Span }

func (b inlineBase) Span() Span { return b.span }
func (inlineBase) inlineNode()  {}

// Text is a literal run of text, HTML-escaped at render time.
type Text struct {
	inlineBase
	Value string
}

func NewText(span Span, value string) *Text {
	return &Text{inlineBase: inlineBase{span}, Value: value}
}

// Ruby is a `｜base《reading》` annotation.
type Ruby struct {
	inlineBase
	Base    string
	Reading string
}

func NewRuby(span Span, base, reading string) *Ruby {
	return &Ruby{inlineBase: inlineBase{span}, Base: base, Reading: reading}
}

// FootnoteRef is a `((text))` reference. ID, BackID, and Number are
// assigned by footnote.Resolve in document order, not by the inline
// parser: Number is the same 1-based counter as the "n" in "fn-n", kept
// alongside it so the renderer can show the reference's visible ordinal
// without re-parsing the id string.
type FootnoteRef struct {
	inlineBase
	Text   string
	ID     string
	BackID string
	Number int
}

func NewFootnoteRef(span Span, text string) *FootnoteRef {
	return &FootnoteRef{inlineBase: inlineBase{span}, Text: text}
}

// EmphasisKind distinguishes the two inline-marker decorations allowed
// inside running text (spec.md §4.4 item 4).
type EmphasisKind string

const (
	EmphasisBold   EmphasisKind = "bold"
	EmphasisItalic EmphasisKind = "italic"
)

// Emphasis is a `#太字#...##`/`#イタリック#...##` inline marker. Nested
// inline markers are permitted, hence Children rather than a flat value.
type Emphasis struct {
	inlineBase
	Kind     EmphasisKind
	Children InlineSeq
}

func NewEmphasis(span Span, kind EmphasisKind, children InlineSeq) *Emphasis {
	return &Emphasis{inlineBase: inlineBase{span}, Kind: kind, Children: children}
}

// InlineCode is a literal code run, rendered as <code>. The inline
// parser does not currently produce it.
type InlineCode struct {
	inlineBase
	Value string
}

func NewInlineCode(span Span, value string) *InlineCode {
	return &InlineCode{inlineBase: inlineBase{span}, Value: value}
}

// RawEscape is the literal character produced by a `\` escape sequence
// (spec.md §4.4 item 1). A `###`-escaped marker line does not produce
// one: its text reaches the inline parser with a single leading `#`.
type RawEscape struct {
	inlineBase
	Value string
}

func NewRawEscape(span Span, value string) *RawEscape {
	return &RawEscape{inlineBase: inlineBase{span}, Value: value}
}
