package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kumihan-go/formatter/footnote"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
	"github.com/kumihan-go/formatter/render"
	"github.com/kumihan-go/formatter/toc"
)

func TestRenderTOCNestsChildren(t *testing.T) {
	child := &toc.Entry{Level: 2, AnchorID: "heading-2", Inline: kast.InlineSeq{kast.NewText(kast.Span{}, "B")}}
	root := &toc.Entry{Level: 1, AnchorID: "heading-1", Inline: kast.InlineSeq{kast.NewText(kast.Span{}, "A")}, Children: []*toc.Entry{child}}

	got := render.RenderTOC([]*toc.Entry{root})

	assert.Equal(t, `<nav class="toc"><ul><li><a href="#heading-1">A</a><ul><li><a href="#heading-2">B</a></li></ul></li></ul></nav>`, got)
}

func TestRenderTOCEmptyReturnsEmptyString(t *testing.T) {
	assert.Equal(t, "", render.RenderTOC(nil))
}

func TestRenderHeadingWithAnchor(t *testing.T) {
	h := kast.NewHeading(kast.Span{}, 1, kast.InlineSeq{kast.NewText(kast.Span{}, "タイトル")}, nil)
	h.AnchorID = "heading-1"
	doc := &kast.Document{Children: []kast.BlockNode{h}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<h1 id="heading-1">タイトル</h1>`, got)
}

func TestRenderCompositeHeadingWrapsDecorations(t *testing.T) {
	bold := &keyword.Keyword{Name: "太字", HTMLTag: "strong"}
	h := kast.NewHeading(kast.Span{}, 2, kast.InlineSeq{kast.NewText(kast.Span{}, "重要")}, []*keyword.Keyword{bold})
	h.AnchorID = "heading-1"
	doc := &kast.Document{Children: []kast.BlockNode{h}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<h2 id="heading-1"><strong>重要</strong></h2>`, got)
}

func TestRenderEscapesText(t *testing.T) {
	p := kast.NewParagraph(kast.Span{}, kast.InlineSeq{kast.NewText(kast.Span{}, `<script>&"'`)})
	doc := &kast.Document{Children: []kast.BlockNode{p}}

	got := render.Render(doc, "", nil)

	assert.Contains(t, got, "&lt;script&gt;")
	assert.Contains(t, got, "&amp;")
}

func TestRenderDecoratedBlockNestsByRankOuterFirst(t *testing.T) {
	box := &keyword.Keyword{Name: "枠線", HTMLTag: "div", CSSClass: "box", NestingRank: 10}
	bold := &keyword.Keyword{Name: "太字", HTMLTag: "strong", NestingRank: 40}
	para := kast.NewParagraph(kast.Span{}, kast.InlineSeq{kast.NewText(kast.Span{}, "hi")})
	block := kast.NewDecoratedBlock(kast.Span{}, []*keyword.Keyword{box, bold}, nil, []kast.BlockNode{para})
	doc := &kast.Document{Children: []kast.BlockNode{block}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<div class="box"><strong>hi</strong></div>`, got)
}

func TestRenderHighlightColorStyle(t *testing.T) {
	hl := &keyword.Keyword{Name: "ハイライト", HTMLTag: "div", CSSClass: "highlight", NestingRank: 11}
	para := kast.NewParagraph(kast.Span{}, kast.InlineSeq{kast.NewText(kast.Span{}, "x")})
	block := kast.NewDecoratedBlock(kast.Span{}, []*keyword.Keyword{hl}, map[string]string{"color": "#FFFF00"}, []kast.BlockNode{para})
	doc := &kast.Document{Children: []kast.BlockNode{block}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<div class="highlight" style="background-color:#FFFF00">x</div>`, got)
}

func TestRenderDecoratedBlockWithMultipleChildrenKeepsBlockWrappers(t *testing.T) {
	box := &keyword.Keyword{Name: "枠線", HTMLTag: "div", CSSClass: "box", NestingRank: 10}
	first := kast.NewParagraph(kast.Span{}, kast.InlineSeq{kast.NewText(kast.Span{}, "a")})
	second := kast.NewParagraph(kast.Span{}, kast.InlineSeq{kast.NewText(kast.Span{}, "b")})
	block := kast.NewDecoratedBlock(kast.Span{}, []*keyword.Keyword{box}, nil, []kast.BlockNode{first, second})
	doc := &kast.Document{Children: []kast.BlockNode{block}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<div class="box"><p>a</p><p>b</p></div>`, got)
}

func TestRenderCollapsibleSpoiler(t *testing.T) {
	para := kast.NewParagraph(kast.Span{}, kast.InlineSeq{kast.NewText(kast.Span{}, "secret")})
	c := kast.NewCollapsible(kast.Span{}, "ネタバレを表示", true, []kast.BlockNode{para})
	doc := &kast.Document{Children: []kast.BlockNode{c}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<details class="spoiler"><summary>ネタバレを表示</summary><p>secret</p></details>`, got)
}

func TestRenderImage(t *testing.T) {
	img := kast.NewImage(kast.Span{}, "photo.png", "a photo", nil)
	doc := &kast.Document{Children: []kast.BlockNode{img}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<img alt="a photo" src="images/photo.png"/>`, got)
}

func TestRenderTocPlaceholderSubstitutesGivenHTML(t *testing.T) {
	doc := &kast.Document{Children: []kast.BlockNode{kast.NewTocPlaceholder(kast.Span{})}}

	got := render.Render(doc, `<nav class="toc">stub</nav>`, nil)

	assert.Equal(t, `<nav class="toc">stub</nav>`, got)
}

func TestRenderErrorMarker(t *testing.T) {
	e := kast.NewErrorMarker(kast.Span{}, "#bogus#", kast.KindUnknownKeyword, "unknown keyword")
	doc := &kast.Document{Children: []kast.BlockNode{e}}

	got := render.Render(doc, "", nil)

	assert.Contains(t, got, `class="error-marker"`)
	assert.Contains(t, got, "unknown keyword")
	assert.Contains(t, got, "#bogus#")
}

func TestRenderAppendsFootnotesSection(t *testing.T) {
	doc := &kast.Document{Children: nil}
	defs := []footnote.Definition{{ID: "fn-1", BackID: "fnref-1", Content: "note"}}

	got := render.Render(doc, "", defs)

	assert.Contains(t, got, `class="footnotes"`)
	assert.Contains(t, got, `id="fn-1"`)
	assert.Contains(t, got, `href="#fnref-1"`)
}

func TestRenderFootnoteRefAsNumberedSup(t *testing.T) {
	ref := kast.NewFootnoteRef(kast.Span{}, "注記")
	ref.ID = "fn-1"
	ref.BackID = "fnref-1"
	ref.Number = 1
	para := kast.NewParagraph(kast.Span{}, kast.InlineSeq{
		kast.NewText(kast.Span{}, "本文"), ref, kast.NewText(kast.Span{}, "続き。"),
	})
	doc := &kast.Document{Children: []kast.BlockNode{para}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<p>本文<sup id="fnref-1"><a href="#fn-1">1</a></sup>続き。</p>`, got)
}

func TestRenderListWithDecorations(t *testing.T) {
	bold := &keyword.Keyword{Name: "太字", HTMLTag: "strong"}
	item := kast.NewListItem(kast.Span{}, []*keyword.Keyword{bold}, kast.InlineSeq{kast.NewText(kast.Span{}, "x")})
	list := kast.NewList(kast.Span{}, false)
	list.Items = append(list.Items, item)
	doc := &kast.Document{Children: []kast.BlockNode{list}}

	got := render.Render(doc, "", nil)

	assert.Equal(t, `<ul><li><strong>x</strong></li></ul>`, got)
}
