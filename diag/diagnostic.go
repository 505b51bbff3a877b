// Package diag implements the validator: it collects and classifies
// parse/render-time diagnostics, attaches keyword-similarity repair
// suggestions, and enforces the strict/normal/lenient error-level policy
// from spec.md §4.6.
package diag

import (
	"fmt"
	"strings"

	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
)

// Severity is how seriously a Diagnostic's kind is taken under the
// configured ErrorLevel.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is one recoverable parse, validation, or render issue.
type Diagnostic struct {
	Severity   Severity
	Kind       kast.Kind
	Span       kast.Span
	Message    string
	Suggestion []*keyword.Keyword
}

// ErrorLevel is the configurable policy from spec.md §4.6.
type ErrorLevel string

const (
	LevelStrict  ErrorLevel = "strict"
	LevelNormal  ErrorLevel = "normal"
	LevelLenient ErrorLevel = "lenient"
	LevelIgnore  ErrorLevel = "ignore"
)

// defaultSeverity maps a Kind to the severity that New (and so
// UnknownKeyword) gives it; kinds missing from the map get
// SeverityError.
var defaultSeverity = map[kast.Kind]Severity{
	kast.KindUnknownKeyword:        SeverityError,
	kast.KindUnclosedBlock:         SeverityError,
	kast.KindUnexpectedClose:       SeverityWarning,
	kast.KindInvalidAttribute:      SeverityError,
	kast.KindInvalidColor:          SeverityWarning,
	kast.KindDuplicateAnchor:       SeverityInfo,
	kast.KindUnresolvedFootnote:    SeverityError,
	kast.KindNestingTooDeep:        SeverityWarning,
	kast.KindEmptyBlock:            SeverityError,
	kast.KindMixedInlineBlock:      SeverityError,
	kast.KindMultiParagraphHeading: SeverityWarning,
	kast.KindUnescapedInlineOpener: SeverityWarning,
}

// New builds a Diagnostic with the kind's default severity.
func New(kind kast.Kind, span kast.Span, message string) Diagnostic {
	sev, ok := defaultSeverity[kind]
	if !ok {
		sev = SeverityError
	}
	return Diagnostic{Severity: sev, Kind: kind, Span: span, Message: message}
}

// UnknownKeyword builds an UnknownKeyword diagnostic with up to 3
// edit-distance-ranked suggestions from the registry (spec.md §4.6).
func UnknownKeyword(reg *keyword.Registry, span kast.Span, token string) Diagnostic {
	d := New(kast.KindUnknownKeyword, span, fmt.Sprintf("unknown keyword %q", token))
	d.Suggestion = reg.Suggest(token, 3)
	return d
}

// SuggestionText renders the message with its top suggestion inlined
// (spec.md §8 S4: a rendered ErrorMarker must quote both the unknown
// token and the suggestion), as opposed to String()'s full "did you
// mean: a, b, c?" listing of every candidate.
func (d Diagnostic) SuggestionText() string {
	if len(d.Suggestion) == 0 {
		return d.Message
	}
	return fmt.Sprintf("%s (did you mean %q?)", d.Message, d.Suggestion[0].Name)
}

func (d Diagnostic) String() string {
	var names []string
	for _, kw := range d.Suggestion {
		names = append(names, kw.Name)
	}
	if len(names) == 0 {
		return fmt.Sprintf("[%s] %s at %s: %s", d.Severity, d.Kind, d.Span, d.Message)
	}
	return fmt.Sprintf("[%s] %s at %s: %s (did you mean: %s?)", d.Severity, d.Kind, d.Span, d.Message, strings.Join(names, ", "))
}
