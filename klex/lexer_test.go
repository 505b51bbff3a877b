package klex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumihan-go/formatter/klex"
)

func TestLexMarkerOpenAndClose(t *testing.T) {
	lines := klex.Lex(klex.Normalize([]byte("#見出し1#\nタイトル\n##\n")))
	require.Len(t, lines, 3)
	assert.Equal(t, klex.KindMarkerOpen, lines[0].Kind)
	assert.Equal(t, "見出し1", lines[0].Header)
	assert.Equal(t, klex.KindText, lines[1].Kind)
	assert.Equal(t, klex.KindMarkerClose, lines[2].Kind)
}

func TestLexMarkerOpenWithColorAttrEndingInHash(t *testing.T) {
	lines := klex.Lex(klex.Normalize([]byte("#ハイライト color=#ffffcc#\n")))
	require.Len(t, lines, 1)
	assert.Equal(t, klex.KindMarkerOpen, lines[0].Kind)
	assert.Equal(t, "ハイライト color=#ffffcc", lines[0].Header)
}

func TestLexMarkerInline(t *testing.T) {
	lines := klex.Lex(klex.Normalize([]byte("#太字# content ##\n")))
	require.Len(t, lines, 1)
	assert.Equal(t, klex.KindMarkerInline, lines[0].Kind)
	assert.Equal(t, "太字", lines[0].Header)
	assert.Equal(t, "content", lines[0].Content)
	assert.True(t, lines[0].Closed)
}

func TestLexEscapedMarkerLine(t *testing.T) {
	lines := klex.Lex(klex.Normalize([]byte("###not a marker\n")))
	require.Len(t, lines, 1)
	assert.Equal(t, klex.KindEscapedMarkerLine, lines[0].Kind)
	assert.Equal(t, "#not a marker", lines[0].Escaped)
}

func TestLexListItems(t *testing.T) {
	lines := klex.Lex(klex.Normalize([]byte("- one\n  - two\n1. three\n")))
	require.Len(t, lines, 3)
	assert.Equal(t, klex.KindListItem, lines[0].Kind)
	assert.Equal(t, 0, lines[0].Indent)
	assert.False(t, lines[0].Ordered)
	assert.Equal(t, 2, lines[1].Indent)
	assert.True(t, lines[2].Ordered)
}

func TestLexBlankAndText(t *testing.T) {
	lines := klex.Lex(klex.Normalize([]byte("\n本文です。\n")))
	require.Len(t, lines, 2)
	assert.Equal(t, klex.KindBlank, lines[0].Kind)
	assert.Equal(t, klex.KindText, lines[1].Kind)
	assert.Equal(t, "本文です。", lines[1].Raw)
}

func TestNormalizeStripsBOMAndCRLF(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\rc")...)
	got := klex.Normalize(raw)
	assert.Equal(t, "a\nb\nc", got)
}
