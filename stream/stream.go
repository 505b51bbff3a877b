// Package stream implements the Streaming Driver (C11): it partitions a
// large document into chunks, lexes and parses them concurrently with a
// bounded worker pool, and joins the resulting partial ASTs into one
// Document before handing it to the TOC/footnote passes (spec.md
// §4.11). The worker pool mirrors the teacher's runPriorityGroup
// pattern in services/trace/analysis/enhanced_analyzer.go: an indexed
// result slice written by index (no lock needed) inside an
// errgroup.WithContext group, joined back into order after Wait.
package stream

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
	"github.com/kumihan-go/formatter/kparse"
)

// Progress is emitted after each chunk completes (spec.md §4.11).
type Progress struct {
	ProgressPercent float64
	ProcessingRate  float64 // chunks per second
	ETASeconds      float64
}

// Options configures the driver. A zero value is valid: thresholds fall
// back to the package defaults and Workers falls back to the host's CPU
// count.
type Options struct {
	ChunkThresholdBytes int
	ChunkThresholdLines int
	Workers             int
	OnProgress          func(Progress)
}

// Run splits source into chunks, parses them with up to Workers
// goroutines, and returns one joined Document plus a Report that
// combines every chunk's diagnostics in source order. It respects
// ctx: checked between chunk dispatches, it stops launching further
// work and returns ctx.Err() once cancellation is observed, discarding
// partial results per spec.md §4.11's cooperative-cancellation rule.
func Run(ctx context.Context, source string, reg *keyword.Registry, opts Options) (*kast.Document, *diag.Report, error) {
	chunks := splitChunks(source, opts.ChunkThresholdBytes, opts.ChunkThresholdLines)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type chunkResult struct {
		children []kast.BlockNode
		report   *diag.Report
	}
	results := make([]chunkResult, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)
	start := time.Now()
	var completed int64

	for i, chunk := range chunks {
		i, chunk := i, chunk
		if gCtx.Err() != nil {
			break
		}
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			doc, report := kparse.Parse(chunk, reg)
			results[i] = chunkResult{children: doc.Children, report: report}

			done := atomic.AddInt64(&completed, 1)
			if opts.OnProgress != nil {
				elapsed := time.Since(start).Seconds()
				rate := 0.0
				if elapsed > 0 {
					rate = float64(done) / elapsed
				}
				remaining := len(chunks) - int(done)
				eta := 0.0
				if rate > 0 {
					eta = float64(remaining) / rate
				}
				opts.OnProgress(Progress{
					ProgressPercent: 100 * float64(done) / float64(len(chunks)),
					ProcessingRate:  rate,
					ETASeconds:      eta,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}

	merged := &kast.Document{}
	mergedReport := diag.NewReport(source)
	for _, r := range results {
		merged.Children = append(merged.Children, r.children...)
		if r.report != nil {
			mergedReport.Diagnostics = append(mergedReport.Diagnostics, r.report.Diagnostics...)
		}
	}
	return merged, mergedReport, nil
}
