// Package render implements the HTML Renderer (C9): a dispatch table
// keyed by kast node variant that builds golang.org/x/net/html node
// trees and serializes them to a body fragment (spec.md §4.9), the same
// html.Node/atom approach the teacher's model/to_dom.go uses for
// ProseMirror nodes and marks.
package render

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kumihan-go/formatter/footnote"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/toc"
)

// Render produces the body HTML fragment for doc. tocHTML substitutes
// every kast.TocPlaceholder among doc's top-level children; a placeholder
// nested inside a DecoratedBlock or Collapsible renders as empty text.
// defs is appended as a footnotes section when non-empty (spec.md §4.8).
func Render(doc *kast.Document, tocHTML string, defs []footnote.Definition) string {
	var buf bytes.Buffer
	for i, child := range doc.Children {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(renderBlockString(child, tocHTML))
	}
	if len(defs) > 0 {
		buf.WriteByte('\n')
		buf.WriteString(renderFootnotes(defs))
	}
	return buf.String()
}

func renderBlockString(n kast.BlockNode, tocHTML string) string {
	if _, ok := n.(*kast.TocPlaceholder); ok {
		return tocHTML
	}
	return serialize(renderBlock(n))
}

// renderBlock dispatches one block node to an *html.Node. It never
// returns nil: a node type with no case below renders as an empty <p>.
func renderBlock(n kast.BlockNode) *html.Node {
	switch v := n.(type) {
	case *kast.Heading:
		return renderHeading(v)
	case *kast.Paragraph:
		return elem(atom.P, nil, inlineNodes(v.Inline)...)
	case *kast.List:
		return renderList(v)
	case *kast.DecoratedBlock:
		return renderDecorated(v)
	case *kast.Collapsible:
		return renderCollapsible(v)
	case *kast.Image:
		return renderImage(v)
	case *kast.ErrorMarker:
		return renderErrorMarker(v)
	case *kast.TocPlaceholder:
		// Only reached when nested inside a decorated/collapsible block;
		// the top-level case is substituted directly in renderBlockString.
		return textNode("")
	default:
		return elem(atom.P, nil)
	}
}

// renderHeading wraps the heading's inline content with any composite
// decorations (`見出し2+太字`, spec.md §3 invariant 1) before applying the
// heading tag itself, innermost-first exactly like renderListItem's
// Decorations loop.
func renderHeading(h *kast.Heading) *html.Node {
	tag := headingAtom(h.Level)
	attrs := []html.Attribute{{Key: "id", Val: h.AnchorID}}
	content := inlineNodes(h.Inline)
	for i := len(h.Decorations) - 1; i >= 0; i-- {
		dtag := tagForDecoration(h.Decorations[i].HTMLTag)
		content = []*html.Node{elem(dtag, nil, content...)}
	}
	return elem(tag, attrs, content...)
}

func headingAtom(level int) atom.Atom {
	switch level {
	case 1:
		return atom.H1
	case 2:
		return atom.H2
	case 3:
		return atom.H3
	case 4:
		return atom.H4
	case 5:
		return atom.H5
	default:
		return atom.H1
	}
}

func renderList(l *kast.List) *html.Node {
	tag := atom.Ul
	if l.Ordered {
		tag = atom.Ol
	}
	items := make([]*html.Node, 0, len(l.Items))
	for _, item := range l.Items {
		items = append(items, renderListItem(item))
	}
	return elem(tag, nil, items...)
}

func renderListItem(item *kast.ListItem) *html.Node {
	content := inlineNodes(item.Inline)
	for i := len(item.Decorations) - 1; i >= 0; i-- {
		kw := item.Decorations[i]
		tag := tagForDecoration(kw.HTMLTag)
		content = []*html.Node{elem(tag, nil, content...)}
	}
	li := elem(atom.Li, nil, content...)
	if item.Sublist != nil {
		appendChild(li, renderList(item.Sublist))
	}
	return li
}

func tagForDecoration(htmlTag string) atom.Atom {
	if a := atom.Lookup([]byte(htmlTag)); a != 0 {
		return a
	}
	return atom.Span
}

// renderDecorated emits nested elements in NestingRank order (spec.md
// §4.9): kws is already deduplicated and rank-sorted by the parser, so
// the outermost wrapper is kws[0].
func renderDecorated(d *kast.DecoratedBlock) *html.Node {
	children := renderContainerChildren(d.Children)
	var node *html.Node
	for i := len(d.Keywords) - 1; i >= 0; i-- {
		kw := d.Keywords[i]
		var attrs []html.Attribute
		if kw.CSSClass != "" {
			attrs = append(attrs, html.Attribute{Key: "class", Val: kw.CSSClass})
		}
		if style := colorStyleFor(kw.Name, d.Attrs); style != "" {
			attrs = append(attrs, html.Attribute{Key: "style", Val: style})
		}
		tag := tagForDecoration(kw.HTMLTag)
		if node == nil {
			node = elem(tag, attrs, children...)
		} else {
			node = elem(tag, attrs, node)
		}
	}
	if node == nil {
		return elem(atom.Div, nil, children...)
	}
	return node
}

// renderContainerChildren renders a DecoratedBlock's children
// (renderCollapsible does not use it): a single paragraph child renders its inline
// content directly, with no <p> wrapper (spec.md §4.9's own example
// shows `<div class="box"><strong>…</strong></div>`, content inline, not
// a nested block) - any other shape (multiple children, or a non-
// paragraph child) renders each child as its own block normally.
func renderContainerChildren(blocks []kast.BlockNode) []*html.Node {
	if len(blocks) == 1 {
		if p, ok := blocks[0].(*kast.Paragraph); ok {
			return inlineNodes(p.Inline)
		}
	}
	out := make([]*html.Node, 0, len(blocks))
	for _, c := range blocks {
		out = append(out, renderBlock(c))
	}
	return out
}

// colorStyleFor builds the `background-color:<value>` style for a
// ハイライト-shaped keyword; other keywords never carry a color attr, so
// it returns "" for them (spec.md §4.9).
func colorStyleFor(kwName string, attrs map[string]string) string {
	if kwName != "ハイライト" {
		return ""
	}
	color, ok := attrs["color"]
	if !ok || color == "" {
		return ""
	}
	return "background-color:" + color
}

func renderCollapsible(c *kast.Collapsible) *html.Node {
	var attrs []html.Attribute
	if c.Spoiler {
		attrs = append(attrs, html.Attribute{Key: "class", Val: "spoiler"})
	}
	summary := elem(atom.Summary, nil, textNode(c.Summary))
	children := make([]*html.Node, 0, len(c.Children)+1)
	children = append(children, summary)
	for _, child := range c.Children {
		children = append(children, renderBlock(child))
	}
	return elem(atom.Details, attrs, children...)
}

func renderImage(img *kast.Image) *html.Node {
	attrs := []html.Attribute{
		{Key: "alt", Val: img.Alt},
		{Key: "src", Val: "images/" + img.Src},
	}
	return elem(atom.Img, attrs)
}

func renderErrorMarker(e *kast.ErrorMarker) *html.Node {
	attrs := []html.Attribute{{Key: "class", Val: "error-marker"}}
	msg := elem(atom.Span, nil, textNode(e.Message))
	original := elem(atom.Code, nil, textNode(e.OriginalText))
	return elem(atom.Div, attrs, msg, original)
}

// RenderTOC builds the nested `<nav class="toc">` fragment the
// assembler's TocHTML context key expects, and that TocPlaceholder
// substitutes in the body (spec.md §4.7).
func RenderTOC(entries []*toc.Entry) string {
	if len(entries) == 0 {
		return ""
	}
	nav := elem(atom.Nav, []html.Attribute{{Key: "class", Val: "toc"}}, tocList(entries))
	return serialize(nav)
}

func tocList(entries []*toc.Entry) *html.Node {
	items := make([]*html.Node, 0, len(entries))
	for _, e := range entries {
		link := elem(atom.A, []html.Attribute{{Key: "href", Val: "#" + e.AnchorID}}, inlineNodes(e.Inline)...)
		children := []*html.Node{link}
		if len(e.Children) > 0 {
			children = append(children, tocList(e.Children))
		}
		items = append(items, elem(atom.Li, nil, children...))
	}
	return elem(atom.Ul, nil, items...)
}

func renderFootnotes(defs []footnote.Definition) string {
	items := make([]*html.Node, 0, len(defs))
	for _, d := range defs {
		backlink := elem(atom.A, []html.Attribute{{Key: "href", Val: "#" + d.BackID}}, textNode("↩"))
		li := elem(atom.Li, []html.Attribute{{Key: "id", Val: d.ID}}, textNode(d.Content+" "), backlink)
		items = append(items, li)
	}
	list := elem(atom.Ol, nil, items...)
	section := elem(atom.Div, []html.Attribute{{Key: "class", Val: "footnotes"}}, list)
	return serialize(section)
}

func inlineNodes(seq kast.InlineSeq) []*html.Node {
	out := make([]*html.Node, 0, len(seq))
	for _, n := range seq {
		out = append(out, renderInline(n))
	}
	return out
}

func renderInline(n kast.InlineNode) *html.Node {
	switch v := n.(type) {
	case *kast.Text:
		return textNode(v.Value)
	case *kast.RawEscape:
		return textNode(v.Value)
	case *kast.InlineCode:
		return elem(atom.Code, nil, textNode(v.Value))
	case *kast.Ruby:
		return elem(atom.Ruby, nil, textNode(v.Base), elem(atom.Rt, nil, textNode(v.Reading)))
	case *kast.Emphasis:
		tag := atom.Strong
		if v.Kind == kast.EmphasisItalic {
			tag = atom.Em
		}
		return elem(tag, nil, inlineNodes(v.Children)...)
	case *kast.FootnoteRef:
		link := elem(atom.A, []html.Attribute{{Key: "href", Val: "#" + v.ID}}, textNode(strconv.Itoa(v.Number)))
		return elem(atom.Sup, []html.Attribute{{Key: "id", Val: v.BackID}}, link)
	default:
		return textNode("")
	}
}

func elem(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: sortAttrs(attrs)}
	for _, c := range children {
		if c != nil {
			appendChild(n, c)
		}
	}
	return n
}

func appendChild(parent, child *html.Node) {
	parent.AppendChild(child)
}

func textNode(v string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: v}
}

// sortAttrs enforces the spec's exact attribute order: id, class, style,
// then every other attribute alphabetically (spec.md §4.9/§4.10).
func sortAttrs(attrs []html.Attribute) []html.Attribute {
	rank := func(key string) int {
		switch key {
		case "id":
			return 0
		case "class":
			return 1
		case "style":
			return 2
		default:
			return 3
		}
	}
	out := make([]html.Attribute, len(attrs))
	copy(out, attrs)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i].Key), rank(out[j].Key)
		if ri != rj {
			return ri < rj
		}
		if ri == 3 {
			return out[i].Key < out[j].Key
		}
		return false
	})
	return out
}

func serialize(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
