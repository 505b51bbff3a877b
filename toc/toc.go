// Package toc implements the TOC Builder (C7): a single pass over the
// parsed AST that assigns anchor IDs to headings and produces the
// nested outline structure consumed by the renderer and the document
// assembler (spec.md §4.7).
package toc

import (
	"fmt"

	"github.com/kumihan-go/formatter/kast"
)

// Entry is one node of the nested outline. Children are headings whose
// level is strictly greater than Entry's and that appeared before the
// next heading at Entry's level or shallower.
type Entry struct {
	Level    int
	AnchorID string
	Inline   kast.InlineSeq
	Children []*Entry
}

// Build walks doc in document order, assigns AnchorID = "heading-<n>"
// (1-based) to every kast.Heading it finds, and returns the resulting
// outline. hasToc reports whether the document contains any heading at
// all (spec.md §4.7's has_toc flag, consumed by the assembler when no
// TocPlaceholder is present).
func Build(doc *kast.Document) (entries []*Entry, hasToc bool) {
	var flat []*Entry
	n := 0
	kast.WalkPreOrder(doc, func(node kast.BlockNode) {
		h, ok := node.(*kast.Heading)
		if !ok {
			return
		}
		n++
		h.AnchorID = fmt.Sprintf("heading-%d", n)
		flat = append(flat, &Entry{Level: h.Level, AnchorID: h.AnchorID, Inline: h.Inline})
	})
	if len(flat) == 0 {
		return nil, false
	}
	return nest(flat), true
}

// nest turns the flat, document-order heading list into a tree: a level
// N entry becomes a child of the nearest preceding entry at a
// strictly-lower level (spec.md §4.7); entries with no eligible parent
// stay at the root.
func nest(flat []*Entry) []*Entry {
	var roots []*Entry
	stack := make([]*Entry, 0, len(flat))

	for _, e := range flat {
		for len(stack) > 0 && stack[len(stack)-1].Level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, e)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, e)
		}
		stack = append(stack, e)
	}
	return roots
}
