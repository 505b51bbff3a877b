package stream

import "github.com/kumihan-go/formatter/klex"

// DefaultChunkThresholdBytes is the spec's default streaming threshold
// (spec.md §4.11): 1 MiB.
const DefaultChunkThresholdBytes = 1 << 20

// DefaultChunkThresholdLines is the line-count companion to
// DefaultChunkThresholdBytes; whichever threshold is reached first ends
// the current chunk.
const DefaultChunkThresholdLines = 10000

// splitChunks partitions source at blank lines, never inside an open
// marker block (spec.md §4.11): it tracks marker nesting depth across
// lines and only considers a blank line a safe split point when depth
// is zero, scanning forward past any blank lines that fall inside an
// unclosed block.
func splitChunks(source string, thresholdBytes, thresholdLines int) []string {
	if thresholdBytes <= 0 {
		thresholdBytes = DefaultChunkThresholdBytes
	}
	if thresholdLines <= 0 {
		thresholdLines = DefaultChunkThresholdLines
	}

	lines := klex.Lex(source)
	if len(lines) == 0 {
		return []string{source}
	}

	var chunks []string
	depth := 0
	chunkStart := 0
	linesSinceSplit := 0

	for _, line := range lines {
		switch line.Kind {
		case klex.KindMarkerOpen:
			depth++
		case klex.KindMarkerClose:
			if depth > 0 {
				depth--
			}
		}
		linesSinceSplit++

		atSafePoint := line.Kind == klex.KindBlank && depth == 0
		overThreshold := line.Span.End.Offset-chunkStart >= thresholdBytes || linesSinceSplit >= thresholdLines
		if atSafePoint && overThreshold {
			chunks = append(chunks, source[chunkStart:line.Span.End.Offset])
			chunkStart = line.Span.End.Offset
			linesSinceSplit = 0
		}
	}
	if chunkStart < len(source) {
		chunks = append(chunks, source[chunkStart:])
	}
	if len(chunks) == 0 {
		chunks = []string{source}
	}
	return chunks
}
