package klex

import "strings"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a leading UTF-8 BOM and folds CRLF/CR line endings to
// LF, per spec.md §6. The lexer and every downstream component always
// operate on normalized text; byte offsets in every Span are offsets
// into this normalized form, not the original input (SPEC_FULL.md §11).
func Normalize(raw []byte) string {
	if len(raw) >= 3 && raw[0] == utf8BOM[0] && raw[1] == utf8BOM[1] && raw[2] == utf8BOM[2] {
		raw = raw[3:]
	}
	s := string(raw)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}
