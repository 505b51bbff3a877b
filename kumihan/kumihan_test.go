package kumihan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/kumihan"
)

func TestProcessRendersHeadingAndParagraph(t *testing.T) {
	src := "#見出し1#\nタイトル\n##\n\n本文です。\n"

	result, code, err := kumihan.Process(src, kumihan.Options{})

	require.NoError(t, err)
	assert.Equal(t, kumihan.ExitSuccess, code)
	assert.Contains(t, result.HTML, `<h1 id="heading-1">タイトル</h1>`)
	assert.Contains(t, result.HTML, `<p>本文です。</p>`)
}

func TestProcessBuildsTocWhenHeadingsExist(t *testing.T) {
	src := "#見出し1#\nA\n##\n\n#見出し2#\nB\n##\n"

	result, _, err := kumihan.Process(src, kumihan.Options{})

	require.NoError(t, err)
	assert.Contains(t, result.HTML, `class="toc"`)
	assert.Contains(t, result.HTML, `href="#heading-1"`)
	assert.Contains(t, result.HTML, `href="#heading-2"`)
}

func TestProcessStrictModeAbortsOnError(t *testing.T) {
	src := "#存在しないキーワード#\n本文\n##\n"

	result, code, err := kumihan.Process(src, kumihan.Options{ErrorLevel: diag.LevelStrict})

	require.Error(t, err)
	assert.Equal(t, kumihan.ExitStrictValidation, code)
	assert.Empty(t, result.HTML)
	require.NotNil(t, result.Diagnostics())
	assert.True(t, result.Diagnostics().HasErrors())
}

func TestProcessNormalModeRendersErrorMarkerInline(t *testing.T) {
	src := "#存在しないキーワード#\n本文\n##\n"

	result, code, err := kumihan.Process(src, kumihan.Options{ErrorLevel: diag.LevelNormal})

	require.NoError(t, err)
	assert.Equal(t, kumihan.ExitSuccess, code)
	assert.Contains(t, result.HTML, "error-marker")
}

func TestConvertWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(in, []byte("本文のみ。\n"), 0o644))

	code, err := kumihan.Convert(in, out, kumihan.Options{})

	require.NoError(t, err)
	assert.Equal(t, kumihan.ExitSuccess, code)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "本文のみ。")
}

func TestConvertMissingInputReturnsIOError(t *testing.T) {
	dir := t.TempDir()

	code, err := kumihan.Convert(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.html"), kumihan.Options{})

	require.Error(t, err)
	assert.Equal(t, kumihan.ExitIOError, code)
	assert.ErrorIs(t, err, kumihan.ErrIO)
}
