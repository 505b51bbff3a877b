// Package kumihan is the library-shaped facade the spec's external
// interfaces are defined against (spec.md §6): one entry point,
// Convert, that wires the lexer, parser, TOC/footnote passes, renderer,
// and assembler together. Its run() shape - validate input, read,
// process, write output, wrap every error with fmt.Errorf - follows the
// teacher's brandonbloom-catmd/main.go run() function.
package kumihan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kumihan-go/formatter/assemble"
	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/footnote"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
	"github.com/kumihan-go/formatter/klex"
	"github.com/kumihan-go/formatter/kparse"
	"github.com/kumihan-go/formatter/render"
	"github.com/kumihan-go/formatter/stream"
	"github.com/kumihan-go/formatter/toc"
)

// ExitCode mirrors spec.md §6's CLI contract.
type ExitCode int

const (
	ExitSuccess          ExitCode = 0
	ExitIOError          ExitCode = 1
	ExitStrictValidation ExitCode = 2
	ExitInternalError    ExitCode = 3
)

var (
	// ErrIO is the sentinel wrapped by every input/output failure.
	ErrIO = errors.New("kumihan: I/O error")
	// ErrStrictValidation is the sentinel returned when error_level is
	// "strict" and the document has at least one error-severity
	// diagnostic (spec.md §4.6, §6).
	ErrStrictValidation = errors.New("kumihan: validation failed under strict error level")
)

// Options mirrors the Options record in spec.md §6.
type Options struct {
	TemplateName        string
	IncludeSourceView   bool
	ErrorLevel          diag.ErrorLevel
	ProgressCallback    func(stream.Progress)
	CancellationContext context.Context
	ChunkThresholdBytes int
	Renderer            assemble.TemplateRenderer
}

// Result carries everything a caller might want after a successful
// Process: the rendered document, and the side-channel diagnostics
// accessor from spec.md §6.
type Result struct {
	HTML   string
	report *diag.Report
}

// Diagnostics exposes the underlying Report (spec.md §6's
// get_diagnostics() accessor).
func (r Result) Diagnostics() *diag.Report { return r.report }

// Convert reads inputPath, converts it to HTML per opts, writes the
// result to outputPath, and returns the exit code spec.md §6 specifies.
func Convert(inputPath, outputPath string, opts Options) (ExitCode, error) {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return ExitIOError, fmt.Errorf("%w: reading %q: %w", ErrIO, inputPath, err)
	}

	result, code, err := Process(string(source), opts)
	if err != nil {
		return code, err
	}

	if err := os.WriteFile(outputPath, []byte(result.HTML), 0o644); err != nil {
		return ExitIOError, fmt.Errorf("%w: writing %q: %w", ErrIO, outputPath, err)
	}
	return ExitSuccess, nil
}

// Process runs the full pipeline over in-memory source text, without
// touching the filesystem: normalize → lex/parse (direct or streamed,
// depending on ChunkThresholdBytes) → TOC/footnote passes → render →
// assemble. Convert is a thin os.ReadFile/os.WriteFile wrapper around
// this.
func Process(raw string, opts Options) (Result, ExitCode, error) {
	source := klex.Normalize([]byte(raw))
	reg := keyword.Default()

	doc, report, err := parse(source, reg, opts)
	if err != nil {
		return Result{}, ExitInternalError, fmt.Errorf("kumihan: parsing: %w", err)
	}

	if opts.ErrorLevel == diag.LevelStrict && report.HasErrors() {
		return Result{report: report}, ExitStrictValidation,
			fmt.Errorf("%w: %d error(s)", ErrStrictValidation, report.ErrorCount())
	}

	entries, hasToc := toc.Build(doc)
	defs := footnote.Resolve(doc)
	tocHTML := render.RenderTOC(entries)
	bodyHTML := render.Render(doc, tocHTML, defs)

	renderer := opts.Renderer
	if renderer == nil {
		renderer = assemble.NewStdlibTemplateRenderer()
	}
	ctx := assemble.Context{
		BodyHTML: bodyHTML,
		TocHTML:  tocHTML,
		HasToc:   hasToc,
	}
	if opts.IncludeSourceView {
		ctx.SourceText = source
	}
	html, err := assemble.Assemble(renderer, opts.TemplateName, ctx)
	if err != nil {
		return Result{report: report}, ExitInternalError, fmt.Errorf("kumihan: assembling: %w", err)
	}
	return Result{HTML: html, report: report}, ExitSuccess, nil
}

func parse(source string, reg *keyword.Registry, opts Options) (*kast.Document, *diag.Report, error) {
	if opts.ChunkThresholdBytes <= 0 || len(source) < opts.ChunkThresholdBytes {
		doc, report := kparse.Parse(source, reg)
		return doc, report, nil
	}
	ctx := opts.CancellationContext
	if ctx == nil {
		ctx = context.Background()
	}
	return stream.Run(ctx, source, reg, stream.Options{
		ChunkThresholdBytes: opts.ChunkThresholdBytes,
		OnProgress:          opts.ProgressCallback,
	})
}
