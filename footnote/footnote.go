// Package footnote implements the Footnote Resolver (C8): it assigns
// stable ids to every FootnoteRef found during an inline-order walk of
// the AST and builds the list of definitions the renderer appends at
// document end (spec.md §4.8).
package footnote

import (
	"fmt"

	"github.com/kumihan-go/formatter/kast"
)

// Definition is one resolved footnote, in the order its reference first
// appeared in the document.
type Definition struct {
	ID      string // "fn-<n>"
	BackID  string // "fnref-<n>"
	Content string
}

// Resolve walks doc's block nodes in document order and, within each
// block, its inline content left to right, assigning
// "fn-<n>"/"fnref-<n>" ids (1-based, spec.md §4.8 P7) to every
// FootnoteRef it finds. It mutates each FootnoteRef in place (ID,
// BackID) and returns the ordered definition list.
func Resolve(doc *kast.Document) []Definition {
	var defs []Definition
	n := 0

	visitInline := func(seq kast.InlineSeq) {
		kast.WalkInline(seq, func(node kast.InlineNode) {
			ref, ok := node.(*kast.FootnoteRef)
			if !ok {
				return
			}
			n++
			ref.ID = fmt.Sprintf("fn-%d", n)
			ref.BackID = fmt.Sprintf("fnref-%d", n)
			ref.Number = n
			defs = append(defs, Definition{ID: ref.ID, BackID: ref.BackID, Content: ref.Text})
		})
	}

	// A sublist sits between its parent item and the next item, so lists
	// are walked item by item here; WalkPreOrder's later visit to a
	// sublist is then skipped.
	seenLists := make(map[*kast.List]bool)
	var visitList func(l *kast.List)
	visitList = func(l *kast.List) {
		seenLists[l] = true
		for _, item := range l.Items {
			visitInline(item.Inline)
			if item.Sublist != nil {
				visitList(item.Sublist)
			}
		}
	}

	kast.WalkPreOrder(doc, func(node kast.BlockNode) {
		switch v := node.(type) {
		case *kast.Heading:
			visitInline(v.Inline)
		case *kast.Paragraph:
			visitInline(v.Inline)
		case *kast.List:
			if !seenLists[v] {
				visitList(v)
			}
		}
	})

	return defs
}
