package kast

import "github.com/kumihan-go/formatter/keyword"

// Document is the root of the AST: an ordered sequence of block nodes.
// The anchor and footnote counters are local to the passes that use them
// (toc.Build, footnote.Resolve); those passes write the resulting ids
// onto the Heading and FootnoteRef nodes.
type Document struct {
	Children []BlockNode
}

// BlockNode is the tagged sum type for every block-level AST variant.
// Dispatch over it (validator, renderer, TOC/footnote walkers) uses a
// type switch, one case per concrete type below - see render.renderBlock
// for the canonical dispatch table.
type BlockNode interface {
	Span() Span
	blockNode()
}

type base struct{ span Span }

func (b base) Span() Span { return b.span }
func (base) blockNode()   {}

// Heading is a `見出しN` block. AnchorID is assigned by toc.Build, not by
// the parser (spec.md §4.7): until the TOC pass runs it is empty.
// Decorations holds any other keywords from a composite marker
// (`見出し2+太字`, spec.md §3 invariant 1): the heading keyword always
// determines the node's identity, the rest wrap its inline content the
// way ListItem.Decorations wrap a list item's.
type Heading struct {
	base
	Level       int
	Inline      InlineSeq
	AnchorID    string
	Decorations []*keyword.Keyword
}

func NewHeading(span Span, level int, inline InlineSeq, decorations []*keyword.Keyword) *Heading {
	return &Heading{base: base{span}, Level: level, Inline: inline, Decorations: decorations}
}

// Paragraph is a run of text lines terminated by a blank line or a
// marker.
type Paragraph struct {
	base
	Inline InlineSeq
}

func NewParagraph(span Span, inline InlineSeq) *Paragraph {
	return &Paragraph{base: base{span}, Inline: inline}
}

// ListItem is one entry of a List. Decorations come from an inline
// keyword prefix (`- #太字# content ##`); Sublist is non-nil when a more
// deeply indented run of list items followed this one.
type ListItem struct {
	Decorations []*keyword.Keyword
	Inline      InlineSeq
	Sublist     *List
	span        Span
}

func (li *ListItem) Span() Span { return li.span }

// NewListItem builds a ListItem with its source span. Decorations and
// Sublist may be filled in afterward by the caller (the parser builds
// Inline/Decorations first, then links Sublist once a deeper-indented
// run of items is seen).
func NewListItem(span Span, decorations []*keyword.Keyword, inline InlineSeq) *ListItem {
	return &ListItem{Decorations: decorations, Inline: inline, span: span}
}

// List is an ordered or unordered run of ListItems at one indent level.
type List struct {
	base
	Ordered bool
	Items   []*ListItem
}

func NewList(span Span, ordered bool) *List {
	return &List{base: base{span}, Ordered: ordered}
}

// DecoratedBlock is a `#keyword(+keyword)#...##` block. Keywords is
// deduplicated and stored in NestingRank order (spec.md §3 invariant 2);
// the renderer trusts that order and never re-sorts it.
type DecoratedBlock struct {
	base
	Keywords []*keyword.Keyword
	Attrs    map[string]string
	Children []BlockNode
}

func NewDecoratedBlock(span Span, kws []*keyword.Keyword, attrs map[string]string, children []BlockNode) *DecoratedBlock {
	return &DecoratedBlock{base: base{span}, Keywords: kws, Attrs: attrs, Children: children}
}

// Collapsible is a `折りたたみ`/`ネタバレ` block, rendered as <details>.
type Collapsible struct {
	base
	Summary  string
	Spoiler  bool
	Children []BlockNode
}

func NewCollapsible(span Span, summary string, spoiler bool, children []BlockNode) *Collapsible {
	return &Collapsible{base: base{span}, Summary: summary, Spoiler: spoiler, Children: children}
}

// Image is a `画像`-keyword block.
type Image struct {
	base
	Src   string
	Alt   string
	Attrs map[string]string
}

func NewImage(span Span, src, alt string, attrs map[string]string) *Image {
	return &Image{base: base{span}, Src: src, Alt: alt, Attrs: attrs}
}

// TocPlaceholder marks a `目次` block; at the top level of the document
// the renderer substitutes the precomputed TOC HTML fragment at this
// position (a placeholder nested inside a container renders empty).
type TocPlaceholder struct{ base }

func NewTocPlaceholder(span Span) *TocPlaceholder {
	return &TocPlaceholder{base: base{span}}
}

// ErrorMarker is a recovered parse failure, rendered visibly in `normal`
// error-level mode (spec.md §7).
type ErrorMarker struct {
	base
	OriginalText string
	Kind         Kind
	Message      string
}

func NewErrorMarker(span Span, original string, kind Kind, message string) *ErrorMarker {
	return &ErrorMarker{base: base{span}, OriginalText: original, Kind: kind, Message: message}
}
