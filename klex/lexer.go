package klex

import (
	"regexp"
	"strings"

	"github.com/kumihan-go/formatter/kast"
)

var listItemRE = regexp.MustCompile(`^( *)(-\s+|\d+\.\s+)(.*)$`)

// Lex splits already-normalized source text into classified
// LogicalLines. It is single-pass and stateful only for byte-offset and
// line-number bookkeeping; it never inspects the lines around it
// (spec.md §4.2).
func Lex(source string) []Line {
	var lines []Line
	offset := 0
	lineNo := 1
	for _, raw := range strings.Split(source, "\n") {
		start := kast.Position{Line: lineNo, Column: 1, Offset: offset}
		end := kast.Position{Line: lineNo, Column: len(runeSlice(raw)) + 1, Offset: offset + len(raw)}
		span := kast.Span{Start: start, End: end}
		lines = append(lines, classify(span, raw))
		offset += len(raw) + 1
		lineNo++
	}
	// Split on "\n" yields one trailing empty string for a source ending
	// in "\n"; spec.md doesn't want a phantom blank logical line for
	// that universally-present terminator.
	if len(lines) > 0 {
		last := lines[len(lines)-1]
		if last.Kind == KindBlank && last.Raw == "" && strings.HasSuffix(source, "\n") {
			lines = lines[:len(lines)-1]
		}
	}
	return lines
}

func runeSlice(s string) []rune { return []rune(s) }

func classify(span kast.Span, raw string) Line {
	trimmed := strings.TrimRight(raw, " \t")

	if strings.TrimSpace(trimmed) == "" {
		return Line{Span: span, Kind: KindBlank, Raw: raw}
	}

	if trimmed == "##" {
		return Line{Span: span, Kind: KindMarkerClose, Raw: raw}
	}

	// "###" escapes marker syntax: the first two '#'s are the escape
	// marker itself, leaving a single literal '#' to start the rendered
	// text (spec.md §4.2: "renderer must emit a literal #").
	if strings.HasPrefix(trimmed, "###") {
		return Line{Span: span, Kind: KindEscapedMarkerLine, Raw: raw, Escaped: "#" + trimmed[3:]}
	}

	if strings.HasPrefix(trimmed, "#") && strings.HasSuffix(trimmed, "##") && len(trimmed) > 2 {
		if header, content, ok := splitInlineMarker(trimmed); ok {
			return Line{Span: span, Kind: KindMarkerInline, Raw: raw, Header: header, Content: content, Closed: true}
		}
	}

	if strings.HasPrefix(trimmed, "#") && strings.HasSuffix(trimmed, "#") && len(trimmed) >= 2 {
		return Line{Span: span, Kind: KindMarkerOpen, Raw: raw, Header: trimmed[1 : len(trimmed)-1]}
	}

	if m := listItemRE.FindStringSubmatch(raw); m != nil {
		indent := len(m[1])
		ordered := !strings.HasPrefix(strings.TrimSpace(m[2]), "-")
		return Line{Span: span, Kind: KindListItem, Raw: raw, Indent: indent, Ordered: ordered, ItemContent: m[3]}
	}

	return Line{Span: span, Kind: KindText, Raw: raw}
}

// splitInlineMarker finds the header-closing '#' (the first '#' after
// the leading one) and the trailing "##" close, returning the text
// between them. Inline markers only ever wrap 太字/イタリック, which
// carry no attributes, so no legitimate header contains an embedded '#'
// that could be mistaken for this close (unlike color attributes on
// block-only keywords, whose headers end in a single '#', not "##").
func splitInlineMarker(trimmed string) (header, content string, ok bool) {
	idx := strings.IndexByte(trimmed[1:], '#')
	if idx < 0 {
		return "", "", false
	}
	idx++ // position within trimmed
	header = trimmed[1:idx]
	rest := trimmed[idx+1:]
	if !strings.HasSuffix(rest, "##") {
		return "", "", false
	}
	content = strings.TrimSpace(rest[:len(rest)-2])
	return header, content, true
}
