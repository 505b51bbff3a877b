package kparse

import (
	"errors"
	"regexp"
	"strings"

	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
	"github.com/kumihan-go/formatter/klex"
)

var headingNameRE = regexp.MustCompile(`^見出し([1-5])$`)

// parseMarkerOpen dispatches a consumed MarkerOpen line to the right
// container handler, per the transition table in spec.md §4.3.
func (p *parser) parseMarkerOpen(open klex.Line, depth int) kast.BlockNode {
	kws, err := p.reg.ParseComposite(open.Header)
	if err != nil {
		var pe *keyword.ParseError
		errors.As(err, &pe)
		d := diag.UnknownKeyword(p.reg, open.Span, pe.Token)
		p.report.Add(d)
		p.skipToClose()
		return kast.NewErrorMarker(open.Span, open.Raw, kast.KindUnknownKeyword, d.SuggestionText())
	}

	if len(kws) == 1 && kws[0].Category == keyword.CategorySpecialTOC {
		return p.parseTocPlaceholder(open)
	}
	if containsCategory(kws, keyword.CategorySpecialImage) {
		return p.parseImage(open, kws)
	}
	if containsCategory(kws, keyword.CategoryCollapsible) {
		return p.parseCollapsible(open, kws, depth)
	}
	if hk, decorations := extractHeadingKeyword(kws); hk != nil {
		return p.parseHeading(open, hk, decorations)
	}

	attrs, err := p.reg.ParseAttributes(open.Header)
	if err != nil {
		var pe *keyword.ParseError
		errors.As(err, &pe)
		kind := kast.KindInvalidAttribute
		if pe.Kind == keyword.ErrInvalidColor {
			kind = kast.KindInvalidColor
		}
		p.report.Add(diag.New(kind, open.Span, err.Error()))
		p.skipToClose()
		return kast.NewErrorMarker(open.Span, open.Raw, kind, err.Error())
	}

	nextDepth := depth
	if nextDepth >= maxNestingDepth {
		p.report.Add(diag.New(kast.KindNestingTooDeep, open.Span, "nesting exceeds maximum depth; flattening"))
	} else {
		nextDepth++
	}
	children := p.parseSequence(nextDepth, true)
	if len(children) == 0 {
		p.report.Add(diag.New(kast.KindEmptyBlock, open.Span, "decorated block has no content"))
		return kast.NewErrorMarker(open.Span, open.Raw, kast.KindEmptyBlock, "empty decorated block")
	}
	return kast.NewDecoratedBlock(open.Span, kws, attrs, children)
}

func containsCategory(kws []*keyword.Keyword, cat keyword.Category) bool {
	for _, kw := range kws {
		if kw.Category == cat {
			return true
		}
	}
	return false
}

// extractHeadingKeyword finds the one heading-category keyword in a
// composite marker, if any, and returns the remaining keywords
// (decorations layered onto the heading's content, e.g. the 太字 in
// `見出し2+太字`, spec.md §3 invariant 1: a composite decoration whose
// keywords include a heading keyword is still an anchored Heading, not
// a DecoratedBlock).
func extractHeadingKeyword(kws []*keyword.Keyword) (heading *keyword.Keyword, rest []*keyword.Keyword) {
	for i, kw := range kws {
		if kw.Category == keyword.CategoryHeading {
			rest = make([]*keyword.Keyword, 0, len(kws)-1)
			rest = append(rest, kws[:i]...)
			rest = append(rest, kws[i+1:]...)
			return kw, rest
		}
	}
	return nil, nil
}

// skipToClose advances past lines until a MarkerClose or a blank line,
// whichever comes first (spec.md §4.3 recovery rule), consuming the
// close if that's what stopped the scan.
func (p *parser) skipToClose() {
	for {
		line, ok := p.peek()
		if !ok {
			return
		}
		if line.Kind == klex.KindBlank {
			return
		}
		p.advance()
		if line.Kind == klex.KindMarkerClose {
			return
		}
	}
}

func (p *parser) parseTocPlaceholder(open klex.Line) kast.BlockNode {
	nonBlank := false
	end := open.Span
	for {
		line, ok := p.peek()
		if !ok {
			p.report.Add(diag.New(kast.KindUnclosedBlock, open.Span, "unclosed 目次 block"))
			break
		}
		p.advance()
		end = line.Span
		if line.Kind == klex.KindMarkerClose {
			break
		}
		if line.Kind != klex.KindBlank {
			nonBlank = true
		}
	}
	if nonBlank {
		p.report.Add(diag.New(kast.KindMixedInlineBlock, open.Span, "目次 block body is ignored"))
	}
	return kast.NewTocPlaceholder(kast.Span{Start: open.Span.Start, End: end.End})
}

var imageFilenameRE = regexp.MustCompile(`^[A-Za-z0-9_.-]+\.(png|jpe?g|gif|webp|svg)$`)

func (p *parser) parseImage(open klex.Line, kws []*keyword.Keyword) kast.BlockNode {
	attrs, err := p.reg.ParseAttributes(open.Header)
	if err != nil {
		var pe *keyword.ParseError
		errors.As(err, &pe)
		p.report.Add(diag.New(kast.KindInvalidAttribute, open.Span, err.Error()))
		p.skipToClose()
		return kast.NewErrorMarker(open.Span, open.Raw, kast.KindInvalidAttribute, pe.Error())
	}
	var src string
	end := open.Span
	for {
		line, ok := p.peek()
		if !ok {
			p.report.Add(diag.New(kast.KindUnclosedBlock, open.Span, "unclosed 画像 block"))
			break
		}
		p.advance()
		end = line.Span
		if line.Kind == klex.KindMarkerClose {
			break
		}
		if line.Kind == klex.KindBlank {
			continue
		}
		if src == "" {
			src = strings.TrimSpace(line.Raw)
		}
	}
	span := kast.Span{Start: open.Span.Start, End: end.End}
	if src == "" || !imageFilenameRE.MatchString(src) {
		p.report.Add(diag.New(kast.KindInvalidAttribute, span, "invalid or missing image filename"))
		return kast.NewErrorMarker(span, open.Raw, kast.KindInvalidAttribute, "invalid image filename")
	}
	alt := attrs["alt"]
	if alt == "" {
		alt = src
	}
	return kast.NewImage(span, src, alt, attrs)
}

func (p *parser) parseCollapsible(open klex.Line, kws []*keyword.Keyword, depth int) kast.BlockNode {
	attrs, err := p.reg.ParseAttributes(open.Header)
	if err != nil {
		p.report.Add(diag.New(kast.KindInvalidAttribute, open.Span, err.Error()))
		p.skipToClose()
		return kast.NewErrorMarker(open.Span, open.Raw, kast.KindInvalidAttribute, err.Error())
	}
	spoiler := false
	summary := "詳細を表示"
	for _, kw := range kws {
		if kw.Name == "ネタバレ" {
			spoiler = true
			summary = "ネタバレを表示"
		}
	}
	if custom, ok := attrs["summary"]; ok && custom != "" {
		summary = custom
	}
	nextDepth := depth
	if nextDepth >= maxNestingDepth {
		p.report.Add(diag.New(kast.KindNestingTooDeep, open.Span, "nesting exceeds maximum depth; flattening"))
	} else {
		nextDepth++
	}
	children := p.parseSequence(nextDepth, true)
	if len(children) == 0 {
		p.report.Add(diag.New(kast.KindEmptyBlock, open.Span, "collapsible block has no content"))
		return kast.NewErrorMarker(open.Span, open.Raw, kast.KindEmptyBlock, "empty collapsible")
	}
	return kast.NewCollapsible(open.Span, summary, spoiler, children)
}

// parseHeading wraps exactly one line of inner text (spec.md §4.3
// "Multi-line headings"); additional lines are joined with a warning
// (SPEC_FULL.md §11 resolves the spec's own open question this way).
// decorations carries any other keywords from a composite marker
// (`見出し2+太字`); the renderer wraps the heading's inline content with
// them.
func (p *parser) parseHeading(open klex.Line, kw *keyword.Keyword, decorations []*keyword.Keyword) kast.BlockNode {
	m := headingNameRE.FindStringSubmatch(kw.Name)
	level := 1
	if m != nil {
		level = int(m[1][0] - '0')
	}
	var textLines []string
	end := open.Span
	joined := false
	for {
		line, ok := p.peek()
		if !ok {
			p.report.Add(diag.New(kast.KindUnclosedBlock, open.Span, "unclosed heading block"))
			break
		}
		p.advance()
		end = line.Span
		if line.Kind == klex.KindMarkerClose {
			break
		}
		if line.Kind == klex.KindBlank {
			continue
		}
		if len(textLines) > 0 {
			joined = true
		}
		textLines = append(textLines, line.Raw)
	}
	if joined {
		p.report.Add(diag.New(kast.KindMultiParagraphHeading, open.Span,
			"multiple lines inside heading block joined into one heading"))
	}
	span := kast.Span{Start: open.Span.Start, End: end.End}
	inline := ParseInline(p.reg, strings.Join(textLines, " "), span, p.report)
	return kast.NewHeading(span, level, inline, decorations)
}

// buildParagraph joins accumulated text lines (preserving internal line
// breaks) and runs the inline parser over the result.
func (p *parser) buildParagraph(lines []klex.Line) kast.BlockNode {
	var raws []string
	for _, l := range lines {
		if l.Kind == klex.KindEscapedMarkerLine {
			raws = append(raws, l.Escaped)
		} else if l.Kind == klex.KindMarkerInline {
			raws = append(raws, "#"+l.Header+"# "+l.Content+" ##")
		} else {
			raws = append(raws, l.Raw)
		}
	}
	span := kast.Span{Start: lines[0].Span.Start, End: lines[len(lines)-1].Span.End}
	inline := ParseInline(p.reg, strings.Join(raws, "\n"), span, p.report)
	return kast.NewParagraph(span, inline)
}
