package kparse

import (
	"errors"
	"strings"

	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
)

const (
	runeRubyOpen    = '｜'
	runeRubyBase    = '《'
	runeRubyBaseEnd = '》'
)

// ParseInline runs the left-to-right inline grammar from spec.md §4.4
// over one text run, producing an InlineSeq. Span tracking is
// line/paragraph-granular, not per-rune: every node produced from a
// given call shares the caller-supplied span.
func ParseInline(reg *keyword.Registry, text string, span kast.Span, report *diag.Report) kast.InlineSeq {
	runes := []rune(text)
	var seq kast.InlineSeq
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			seq = append(seq, kast.NewText(span, buf.String()))
			buf.Reset()
		}
	}

	i := 0
	for i < len(runes) {
		r := runes[i]

		switch {
		case r == '\\' && i+1 < len(runes):
			flush()
			seq = append(seq, kast.NewRawEscape(span, string(runes[i+1])))
			i += 2

		case r == runeRubyOpen:
			if base, reading, next, ok := scanRuby(runes, i); ok {
				flush()
				seq = append(seq, kast.NewRuby(span, base, reading))
				i = next
			} else {
				buf.WriteRune(r)
				i++
			}

		case r == '(' && i+1 < len(runes) && runes[i+1] == '(':
			if inner, next, ok := scanFootnote(runes, i); ok {
				flush()
				seq = append(seq, kast.NewFootnoteRef(span, inner))
				i = next
			} else {
				if report != nil {
					report.Add(diag.New(kast.KindUnresolvedFootnote, span, "unclosed footnote reference"))
				}
				buf.WriteRune(r)
				i++
			}

		case r == '#' && i+1 < len(runes) && runes[i+1] != '#':
			if kind, children, next, ok := scanEmphasis(reg, runes, i, span, report); ok {
				flush()
				seq = append(seq, kast.NewEmphasis(span, kind, children))
				i = next
			} else {
				buf.WriteRune(r)
				i++
			}

		default:
			buf.WriteRune(r)
			i++
		}
	}
	flush()
	return seq
}

func scanRuby(runes []rune, start int) (base, reading string, next int, ok bool) {
	openBase := -1
	for j := start + 1; j < len(runes); j++ {
		if runes[j] == runeRubyBase {
			openBase = j
			break
		}
		if runes[j] == runeRubyOpen {
			return "", "", 0, false
		}
	}
	if openBase < 0 {
		return "", "", 0, false
	}
	closeBase := -1
	for j := openBase + 1; j < len(runes); j++ {
		if runes[j] == runeRubyBaseEnd {
			closeBase = j
			break
		}
	}
	if closeBase < 0 {
		return "", "", 0, false
	}
	return string(runes[start+1 : openBase]), string(runes[openBase+1 : closeBase]), closeBase + 1, true
}

func scanFootnote(runes []rune, start int) (inner string, next int, ok bool) {
	closeAt := -1
	for j := start + 2; j < len(runes)-1; j++ {
		if runes[j] == ')' && runes[j+1] == ')' {
			closeAt = j
			break
		}
	}
	if closeAt < 0 {
		return "", 0, false
	}
	return string(runes[start+2 : closeAt]), closeAt + 2, true
}

func scanEmphasis(reg *keyword.Registry, runes []rune, start int, span kast.Span, report *diag.Report) (kast.EmphasisKind, kast.InlineSeq, int, bool) {
	headerEnd := -1
	for j := start + 1; j < len(runes); j++ {
		if runes[j] == '#' {
			headerEnd = j
			break
		}
	}
	if headerEnd < 0 {
		return "", nil, 0, false
	}
	header := string(runes[start+1 : headerEnd])

	closeAt := -1
	for j := headerEnd + 1; j < len(runes)-1; j++ {
		if runes[j] == '#' && runes[j+1] == '#' {
			closeAt = j
			break
		}
	}
	if closeAt < 0 {
		return "", nil, 0, false
	}

	kws, err := reg.ParseComposite(header)
	if err != nil {
		if report != nil {
			var pe *keyword.ParseError
			token := header
			if errors.As(err, &pe) {
				token = pe.Token
			}
			report.Add(diag.UnknownKeyword(reg, span, token))
		}
		return "", nil, 0, false
	}
	for _, kw := range kws {
		if !kw.IsInlineOnly() {
			if report != nil {
				report.Add(diag.New(kast.KindMixedInlineBlock, span, "block-only keyword in inline marker"))
			}
			return "", nil, 0, false
		}
	}
	kind := kast.EmphasisBold
	for _, kw := range kws {
		if kw.Name == "イタリック" {
			kind = kast.EmphasisItalic
		}
	}
	content := strings.TrimSpace(string(runes[headerEnd+1 : closeAt]))
	children := ParseInline(reg, content, span, report)
	return kind, children, closeAt + 2, true
}
