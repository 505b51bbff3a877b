// Package assemble implements the Document Assembler (C10): it builds
// the rendering context from a converted document and hands it to an
// injected template collaborator (spec.md §4.10), the same
// walk-tree-then-hand-off-to-an-external-format shape as the teacher's
// model/to_notion.go, generalized from Notion's block tree to an HTML
// template context.
package assemble

import (
	"bytes"
	"fmt"
	"text/template"
)

// Context is the rendering context the spec requires the assembler to
// populate (spec.md §4.10). CSSVars is a flat map so a template can emit
// `:root { --key: value; }` without the assembler knowing CSS syntax.
type Context struct {
	Title          string
	BodyHTML       string
	TocHTML        string
	HasToc         bool
	SourceText     string
	SourceFilename string
	NavigationHTML string
	CSSVars        map[string]string
}

// TemplateRenderer is the external collaborator the assembler hands its
// context to. The core treats the template engine as out of scope
// (spec.md §4.10); it only specifies which keys it populates.
type TemplateRenderer interface {
	Render(templateName string, ctx Context) (string, error)
}

// StdlibTemplateRenderer is the default TemplateRenderer, built on
// text/template (stdlib; justified in DESIGN.md — no third-party
// templating engine appears anywhere in the retrieval pack). Templates
// are registered by name ahead of time via Register.
type StdlibTemplateRenderer struct {
	templates map[string]*template.Template
}

// NewStdlibTemplateRenderer returns a renderer with the built-in
// "default" template registered.
func NewStdlibTemplateRenderer() *StdlibTemplateRenderer {
	r := &StdlibTemplateRenderer{templates: make(map[string]*template.Template)}
	r.templates["default"] = template.Must(template.New("default").Parse(defaultTemplateSource))
	return r
}

// Register adds or replaces a named template.
func (r *StdlibTemplateRenderer) Register(name, source string) error {
	t, err := template.New(name).Parse(source)
	if err != nil {
		return fmt.Errorf("assemble: parsing template %q: %w", name, err)
	}
	r.templates[name] = t
	return nil
}

func (r *StdlibTemplateRenderer) Render(templateName string, ctx Context) (string, error) {
	if templateName == "" {
		templateName = "default"
	}
	t, ok := r.templates[templateName]
	if !ok {
		return "", fmt.Errorf("assemble: unknown template %q", templateName)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("assemble: executing template %q: %w", templateName, err)
	}
	return buf.String(), nil
}

const defaultTemplateSource = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{if .HasToc}}<nav class="toc-sidebar">{{.TocHTML}}</nav>{{end}}
<main>
{{.BodyHTML}}
</main>
</body>
</html>
`

// Assemble invokes renderer on templateName with the given Context. It
// is the single entry point the facade package (kumihan) calls after
// rendering and the TOC/footnote passes have run.
func Assemble(renderer TemplateRenderer, templateName string, ctx Context) (string, error) {
	return renderer.Render(templateName, ctx)
}
