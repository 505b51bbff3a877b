package assemble_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumihan-go/formatter/assemble"
)

func TestStdlibTemplateRendererDefaultTemplate(t *testing.T) {
	r := assemble.NewStdlibTemplateRenderer()
	ctx := assemble.Context{
		Title:    "タイトル",
		BodyHTML: "<p>本文</p>",
		HasToc:   true,
		TocHTML:  "<ul><li>A</li></ul>",
	}

	out, err := assemble.Assemble(r, "", ctx)

	require.NoError(t, err)
	assert.Contains(t, out, "<title>タイトル</title>")
	assert.Contains(t, out, "<p>本文</p>")
	assert.Contains(t, out, "<ul><li>A</li></ul>")
}

func TestStdlibTemplateRendererOmitsTocWhenHasTocFalse(t *testing.T) {
	r := assemble.NewStdlibTemplateRenderer()
	ctx := assemble.Context{Title: "t", BodyHTML: "<p>x</p>", HasToc: false}

	out, err := assemble.Assemble(r, "", ctx)

	require.NoError(t, err)
	assert.NotContains(t, out, "toc-sidebar")
}

func TestStdlibTemplateRendererUnknownTemplateErrors(t *testing.T) {
	r := assemble.NewStdlibTemplateRenderer()

	_, err := assemble.Assemble(r, "nonexistent", assemble.Context{})

	require.Error(t, err)
}

func TestRegisterCustomTemplate(t *testing.T) {
	r := assemble.NewStdlibTemplateRenderer()
	require.NoError(t, r.Register("bare", "{{.BodyHTML}}"))

	out, err := assemble.Assemble(r, "bare", assemble.Context{BodyHTML: "<p>only body</p>"})

	require.NoError(t, err)
	assert.Equal(t, "<p>only body</p>", out)
}

type stubRenderer struct {
	called bool
}

func (s *stubRenderer) Render(name string, ctx assemble.Context) (string, error) {
	s.called = true
	if name == "fail" {
		return "", errors.New("boom")
	}
	return ctx.Title, nil
}

func TestAssembleDelegatesToInjectedRenderer(t *testing.T) {
	s := &stubRenderer{}

	out, err := assemble.Assemble(s, "ok", assemble.Context{Title: "hello"})

	require.NoError(t, err)
	assert.True(t, s.called)
	assert.Equal(t, "hello", out)
}
