package stream

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumihan-go/formatter/kast"
	"github.com/kumihan-go/formatter/keyword"
)

func TestSplitChunksNeverSplitsInsideOpenMarker(t *testing.T) {
	source := "#枠線#\nline one\n\nline two\n##\n\nafter"
	chunks := splitChunks(source, 1, 1)

	reassembled := strings.Join(chunks, "")
	assert.Equal(t, source, reassembled)
	for _, c := range chunks {
		opens := strings.Count(c, "#枠線#")
		closes := 0
		for _, line := range strings.Split(c, "\n") {
			if strings.TrimSpace(line) == "##" {
				closes++
			}
		}
		assert.Equal(t, opens, closes, "chunk must not contain an unterminated marker: %q", c)
	}
}

func TestSplitChunksSingleChunkWhenUnderThreshold(t *testing.T) {
	source := "para one\n\npara two\n"
	chunks := splitChunks(source, DefaultChunkThresholdBytes, DefaultChunkThresholdLines)

	assert.Len(t, chunks, 1)
	assert.Equal(t, source, chunks[0])
}

func TestSplitChunksRespectsByteThreshold(t *testing.T) {
	source := "aaaa\n\nbbbb\n\ncccc\n\ndddd\n"
	chunks := splitChunks(source, 6, 100)

	assert.Greater(t, len(chunks), 1)
	assert.Equal(t, source, strings.Join(chunks, ""))
}

func TestRunMergesChunksInOrder(t *testing.T) {
	source := "#見出し1#\n第一\n##\n\n第一の段落\n\n#見出し1#\n第二\n##\n\n第二の段落\n"
	reg := keyword.Default()

	doc, report, err := Run(context.Background(), source, reg, Options{ChunkThresholdBytes: 1, ChunkThresholdLines: 1, Workers: 4})

	require.NoError(t, err)
	require.NotNil(t, report)
	require.GreaterOrEqual(t, len(doc.Children), 4)
	assert.IsType(t, &kast.Heading{}, doc.Children[0])
	assert.IsType(t, &kast.Paragraph{}, doc.Children[1])
	assert.IsType(t, &kast.Heading{}, doc.Children[2])
	assert.IsType(t, &kast.Paragraph{}, doc.Children[3])
}

func TestRunReportsProgress(t *testing.T) {
	source := "a\n\nb\n\nc\n\nd\n"
	reg := keyword.Default()
	var calls int

	_, _, err := Run(context.Background(), source, reg, Options{
		ChunkThresholdBytes: 1,
		ChunkThresholdLines: 1,
		Workers:             2,
		OnProgress: func(p Progress) {
			calls++
			assert.GreaterOrEqual(t, p.ProgressPercent, 0.0)
			assert.LessOrEqual(t, p.ProgressPercent, 100.0)
		},
	})

	require.NoError(t, err)
	assert.Greater(t, calls, 0)
}

func TestRunRespectsCancellation(t *testing.T) {
	source := strings.Repeat("para\n\n", 50)
	reg := keyword.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Run(ctx, source, reg, Options{ChunkThresholdBytes: 1, ChunkThresholdLines: 1})

	assert.Error(t, err)
}
