package diag

import (
	"fmt"
	"strings"
)

// Report is the structured result of validating a document: every
// diagnostic collected during lex/parse/render, in the order produced.
type Report struct {
	Diagnostics []Diagnostic
	sourceLines []string
}

// NewReport builds an empty Report that can render source excerpts from
// the given normalized source text.
func NewReport(source string) *Report {
	return &Report{sourceLines: strings.Split(source, "\n")}
}

// Add appends a diagnostic to the report.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// HasErrors reports whether any collected diagnostic is SeverityError.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount counts SeverityError diagnostics.
func (r *Report) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Visible filters diagnostics for embedding in rendered output under the
// given ErrorLevel (spec.md §4.6): lenient/ignore suppress warning-and-
// below from the *output*, but Report itself always retains everything.
func (r *Report) Visible(level ErrorLevel) []Diagnostic {
	if level != LevelLenient && level != LevelIgnore {
		return r.Diagnostics
	}
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Text renders a multi-line, one-stanza-per-diagnostic human-readable
// report, each stanza quoting the offending source line.
func (r *Report) Text() string {
	var b strings.Builder
	for i, d := range r.Diagnostics {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\n", d.String())
		if line := r.excerpt(d); line != "" {
			fmt.Fprintf(&b, "    | %s\n", line)
		}
	}
	return b.String()
}

func (r *Report) excerpt(d Diagnostic) string {
	idx := d.Span.Start.Line - 1
	if idx < 0 || idx >= len(r.sourceLines) {
		return ""
	}
	return r.sourceLines[idx]
}
