package kparse

import (
	"regexp"
	"strings"

	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
	"github.com/kumihan-go/formatter/klex"
)

// listFrame tracks one open nested List and the indent level it was
// opened at, reconciled against incoming ListItem lines per spec.md
// §4.3's indent rules (deeper/same/shallower).
type listFrame struct {
	list   *kast.List
	indent int
}

type listBuilder struct {
	stack []listFrame
}

func newListBuilder() *listBuilder { return &listBuilder{} }

func (b *listBuilder) add(p *parser, line klex.Line) {
	item := p.buildListItem(line)

	if len(b.stack) == 0 {
		root := kast.NewList(line.Span, line.Ordered)
		root.Items = append(root.Items, item)
		b.stack = append(b.stack, listFrame{list: root, indent: line.Indent})
		return
	}

	top := b.stack[len(b.stack)-1]
	switch {
	case line.Indent > top.indent:
		lastItem := top.list.Items[len(top.list.Items)-1]
		sub := kast.NewList(line.Span, line.Ordered)
		sub.Items = append(sub.Items, item)
		lastItem.Sublist = sub
		b.stack = append(b.stack, listFrame{list: sub, indent: line.Indent})
	case line.Indent == top.indent:
		top.list.Items = append(top.list.Items, item)
	default:
		for len(b.stack) > 1 && b.stack[len(b.stack)-1].indent > line.Indent {
			b.stack = b.stack[:len(b.stack)-1]
		}
		newTop := b.stack[len(b.stack)-1]
		newTop.list.Items = append(newTop.list.Items, item)
	}
}

// finish returns the outermost list built so far; it is nil if no items
// were ever added (callers only call this when they know items exist).
func (b *listBuilder) finish() *kast.List {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[0].list
}

var listItemPrefixRE = regexp.MustCompile(`^#([^#]+)#\s*(.*?)\s*##$`)

// buildListItem parses an optional inline-keyword-prefix decoration
// (`- #太字# content ##`, spec.md §4.3) and runs the inline parser over
// whatever content remains.
func (p *parser) buildListItem(line klex.Line) *kast.ListItem {
	content := line.ItemContent
	var decorations []*keyword.Keyword

	if m := listItemPrefixRE.FindStringSubmatch(content); m != nil {
		if kws, err := p.reg.ParseComposite(m[1]); err == nil {
			decorations = kws
			content = m[2]
		} else {
			p.report.Add(diag.New(kast.KindUnknownKeyword, line.Span, err.Error()))
		}
	}

	inline := ParseInline(p.reg, strings.TrimSpace(content), line.Span, p.report)
	return kast.NewListItem(line.Span, decorations, inline)
}
