package footnote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumihan-go/formatter/footnote"
	"github.com/kumihan-go/formatter/kast"
)

func TestResolveAssignsContiguousOneBasedIDs(t *testing.T) {
	ref1 := kast.NewFootnoteRef(kast.Span{}, "first")
	ref2 := kast.NewFootnoteRef(kast.Span{}, "second")
	p1 := kast.NewParagraph(kast.Span{}, kast.InlineSeq{ref1})
	p2 := kast.NewParagraph(kast.Span{}, kast.InlineSeq{ref2})
	doc := &kast.Document{Children: []kast.BlockNode{p1, p2}}

	defs := footnote.Resolve(doc)

	require.Len(t, defs, 2)
	assert.Equal(t, "fn-1", ref1.ID)
	assert.Equal(t, "fnref-1", ref1.BackID)
	assert.Equal(t, 1, ref1.Number)
	assert.Equal(t, "fn-2", ref2.ID)
	assert.Equal(t, "fnref-2", ref2.BackID)
	assert.Equal(t, 2, ref2.Number)
	assert.Equal(t, "first", defs[0].Content)
	assert.Equal(t, "second", defs[1].Content)
}

func TestResolveFindsNestedRefsInsideEmphasis(t *testing.T) {
	ref := kast.NewFootnoteRef(kast.Span{}, "nested")
	em := kast.NewEmphasis(kast.Span{}, kast.EmphasisBold, kast.InlineSeq{ref})
	p := kast.NewParagraph(kast.Span{}, kast.InlineSeq{em})
	doc := &kast.Document{Children: []kast.BlockNode{p}}

	defs := footnote.Resolve(doc)

	require.Len(t, defs, 1)
	assert.Equal(t, "fn-1", ref.ID)
}

func TestResolveNoFootnotesReturnsEmpty(t *testing.T) {
	p := kast.NewParagraph(kast.Span{}, kast.InlineSeq{kast.NewText(kast.Span{}, "plain")})
	doc := &kast.Document{Children: []kast.BlockNode{p}}

	defs := footnote.Resolve(doc)

	assert.Empty(t, defs)
}

func TestResolveWalksListItems(t *testing.T) {
	ref := kast.NewFootnoteRef(kast.Span{}, "in a list")
	item := kast.NewListItem(kast.Span{}, nil, kast.InlineSeq{ref})
	list := kast.NewList(kast.Span{}, false)
	list.Items = append(list.Items, item)
	doc := &kast.Document{Children: []kast.BlockNode{list}}

	defs := footnote.Resolve(doc)

	require.Len(t, defs, 1)
	assert.Equal(t, "fn-1", ref.ID)
}
