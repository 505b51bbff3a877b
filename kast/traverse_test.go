package kast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kumihan-go/formatter/kast"
)

func TestWalkPreOrderDescendsIntoDecoratedBlockChildren(t *testing.T) {
	para := kast.NewParagraph(kast.Span{}, nil)
	box := kast.NewDecoratedBlock(kast.Span{}, nil, nil, []kast.BlockNode{para})
	doc := &kast.Document{Children: []kast.BlockNode{box}}

	var visited []kast.BlockNode
	kast.WalkPreOrder(doc, func(n kast.BlockNode) { visited = append(visited, n) })

	assert.Equal(t, []kast.BlockNode{box, para}, visited)
}

func TestWalkPreOrderDescendsIntoListSublists(t *testing.T) {
	sublist := kast.NewList(kast.Span{}, false)
	sublist.Items = []*kast.ListItem{kast.NewListItem(kast.Span{}, nil, nil)}
	outerItem := kast.NewListItem(kast.Span{}, nil, nil)
	outerItem.Sublist = sublist
	list := kast.NewList(kast.Span{}, false)
	list.Items = []*kast.ListItem{outerItem}
	doc := &kast.Document{Children: []kast.BlockNode{list}}

	var visited []kast.BlockNode
	kast.WalkPreOrder(doc, func(n kast.BlockNode) { visited = append(visited, n) })

	assert.Equal(t, []kast.BlockNode{list, sublist}, visited)
}

func TestWalkPostOrderVisitsChildrenBeforeParent(t *testing.T) {
	para := kast.NewParagraph(kast.Span{}, nil)
	box := kast.NewDecoratedBlock(kast.Span{}, nil, nil, []kast.BlockNode{para})
	doc := &kast.Document{Children: []kast.BlockNode{box}}

	var visited []kast.BlockNode
	kast.WalkPostOrder(doc, func(n kast.BlockNode) { visited = append(visited, n) })

	assert.Equal(t, []kast.BlockNode{para, box}, visited)
}

func TestWalkInlineRecursesIntoEmphasisChildren(t *testing.T) {
	ref := kast.NewFootnoteRef(kast.Span{}, "note")
	emphasis := kast.NewEmphasis(kast.Span{}, kast.EmphasisBold, kast.InlineSeq{ref})
	seq := kast.InlineSeq{emphasis}

	var visited []kast.InlineNode
	kast.WalkInline(seq, func(n kast.InlineNode) { visited = append(visited, n) })

	assert.Equal(t, []kast.InlineNode{emphasis, ref}, visited)
}

func TestSpanStringFormatsAsStartDashEnd(t *testing.T) {
	span := kast.Span{Start: kast.Position{Line: 1, Column: 2}, End: kast.Position{Line: 1, Column: 5}}

	assert.Equal(t, "1:2-1:5", span.String())
}
