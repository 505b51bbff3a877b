// Package kast defines the typed Abstract Syntax Tree produced by the
// Kumihan block and inline parsers: a tagged sum type per node variant,
// dispatched on by the validator, TOC builder, footnote resolver, and
// HTML renderer. Nodes are created once by the parser; after that only
// the TOC and footnote passes write their derived id fields, and the
// renderer never mutates them. Ownership is strictly tree-shaped.
package kast

import "fmt"

// Position is a 1-based line/column plus a 0-based byte offset into the
// normalized (BOM-stripped, CRLF-folded) source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open [Start, End) source range every node and
// diagnostic carries, used for diagnostics and the source-view toggle.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Kind classifies a diagnostic or an ErrorMarker. Declared here (rather
// than in the diag package) so that kast.ErrorMarker can reference it
// without an import cycle: diag depends on kast for Span, not the other
// way around.
type Kind string

const (
	KindUnknownKeyword         Kind = "UnknownKeyword"
	KindUnclosedBlock          Kind = "UnclosedBlock"
	KindUnexpectedClose        Kind = "UnexpectedClose"
	KindInvalidAttribute       Kind = "InvalidAttribute"
	KindInvalidColor           Kind = "InvalidColor"
	KindDuplicateAnchor        Kind = "DuplicateAnchor"
	KindUnresolvedFootnote     Kind = "UnresolvedFootnote"
	KindNestingTooDeep         Kind = "NestingTooDeep"
	KindEmptyBlock             Kind = "EmptyBlock"
	KindMixedInlineBlock       Kind = "MixedInlineBlock"
	KindMultiParagraphHeading  Kind = "MultiParagraphHeading"
	KindUnescapedInlineOpener  Kind = "UnescapedInlineOpener"
)
