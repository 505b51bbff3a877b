// Package kparse implements the Kumihan block and inline parsers: a
// pushdown state machine (C3) that assembles lexed lines into the typed
// AST, realized here as recursion over the Go call stack (one
// parseSequence call per open container, mirroring the
// MarkdownParseState.OpenNode/CloseNode stack in the teacher's
// markdown/from_markdown.go), plus an inline scanner (C4) that turns
// paragraph text into InlineSeq. Parsing never raises: every failure
// becomes a diag.Diagnostic and, where content was involved, an
// ErrorMarker node (spec.md §4.3, §7).
package kparse

import (
	"errors"

	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
	"github.com/kumihan-go/formatter/klex"
)

// maxNestingDepth is the cap from spec.md §4.3: exceeding it produces a
// diagnostic and flattens further nesting (depth stops incrementing).
const maxNestingDepth = 20

type parser struct {
	lines  []klex.Line
	pos    int
	reg    *keyword.Registry
	report *diag.Report
}

// Parse tokenizes and parses normalized Kumihan source into a Document
// and a diagnostic Report. It always returns (P1, spec.md §8): it never
// panics on malformed input.
func Parse(source string, reg *keyword.Registry) (*kast.Document, *diag.Report) {
	p := &parser{
		lines:  klex.Lex(source),
		reg:    reg,
		report: diag.NewReport(source),
	}
	children := p.parseSequence(0, false)
	return &kast.Document{Children: children}, p.report
}

func (p *parser) peek() (klex.Line, bool) {
	if p.pos >= len(p.lines) {
		return klex.Line{}, false
	}
	return p.lines[p.pos], true
}

func (p *parser) advance() klex.Line {
	l := p.lines[p.pos]
	p.pos++
	return l
}

func (p *parser) lastSpan() kast.Span {
	if p.pos > 0 {
		return p.lines[p.pos-1].Span
	}
	if len(p.lines) > 0 {
		return p.lines[0].Span
	}
	return kast.Span{}
}

// parseSequence consumes lines, building block nodes for one container,
// until EOF or (if expectClose) a matching MarkerClose, which it
// consumes. It is the pushdown automaton's "current container" state;
// recursive calls are pushes, returns are pops.
func (p *parser) parseSequence(depth int, expectClose bool) []kast.BlockNode {
	var children []kast.BlockNode
	var paraLines []klex.Line
	var lb *listBuilder

	flushParagraph := func() {
		if len(paraLines) == 0 {
			return
		}
		children = append(children, p.buildParagraph(paraLines))
		paraLines = nil
	}
	flushList := func() {
		if lb != nil {
			children = append(children, lb.finish())
			lb = nil
		}
	}

	for {
		line, ok := p.peek()
		if !ok {
			flushParagraph()
			flushList()
			if expectClose {
				p.report.Add(diag.New(kast.KindUnclosedBlock, p.lastSpan(), "unclosed block at end of input"))
			}
			return children
		}

		switch line.Kind {
		case klex.KindBlank:
			flushParagraph()
			flushList()
			p.advance()

		case klex.KindMarkerClose:
			flushParagraph()
			flushList()
			p.advance()
			if expectClose {
				return children
			}
			p.report.Add(diag.New(kast.KindUnexpectedClose, line.Span, "unexpected close marker"))

		case klex.KindMarkerOpen:
			flushParagraph()
			flushList()
			p.advance()
			if node := p.parseMarkerOpen(line, depth); node != nil {
				children = append(children, node)
			}

		case klex.KindListItem:
			flushParagraph()
			if lb == nil {
				lb = newListBuilder()
			}
			lb.add(p, line)
			p.advance()

		case klex.KindMarkerInline:
			flushList()
			if node := p.classifyInlineLine(line); node != nil {
				children = append(children, node)
			} else {
				paraLines = append(paraLines, line)
			}
			p.advance()

		default: // Text, EscapedMarkerLine
			flushList()
			paraLines = append(paraLines, line)
			p.advance()
		}
	}
}

// classifyInlineLine implements the disambiguation rule: a MarkerInline
// line parses as an inline-decorated paragraph line only when every
// named keyword is pure-inline; otherwise it is a MixedInlineBlock
// diagnostic degraded to an ErrorMarker (spec.md §4.3).
func (p *parser) classifyInlineLine(line klex.Line) kast.BlockNode {
	kws, err := p.reg.ParseComposite(line.Header)
	if err != nil {
		var pe *keyword.ParseError
		errors.As(err, &pe)
		d := diag.UnknownKeyword(p.reg, line.Span, pe.Token)
		p.report.Add(d)
		return kast.NewErrorMarker(line.Span, line.Raw, kast.KindUnknownKeyword, d.SuggestionText())
	}
	for _, kw := range kws {
		if !kw.IsInlineOnly() {
			p.report.Add(diag.New(kast.KindMixedInlineBlock, line.Span,
				"block-only keyword used in single-line marker form; use the multi-line form"))
			return kast.NewErrorMarker(line.Span, line.Raw, kast.KindMixedInlineBlock,
				"block-only keyword in inline marker")
		}
	}
	return nil // pure inline: let it flow into paragraph/inline parsing
}
