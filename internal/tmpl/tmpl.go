package tmpl

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var tmplDir embed.FS

var Pages = []string{
	"login",
	"bank",
	"bank_csrf",
	"success",
	"attacker",
	"csrf_error",
}

// TemplateMap holds every page, each parsed on top of its own copy of
// the base layout.
type TemplateMap map[string]*template.Template

func Load() (TemplateMap, error) {
	base, err := template.ParseFS(tmplDir, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base layout: %w", err)
	}

	templates := make(TemplateMap, len(Pages))

	for _, page := range Pages {
		tpl, err := base.Clone()
		if err != nil {
			return nil, err
		}

		_, err = tpl.ParseFS(tmplDir, fmt.Sprintf("templates/%s.html", page))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}

		templates[page] = tpl
	}

	return templates, nil
}

// Render executes page into w. The page is rendered into a buffer
// first so a failing template never leaves a half written response.
func (t TemplateMap) Render(w io.Writer, page string, data any) error {
	tpl, ok := t[page]
	if !ok {
		return fmt.Errorf("template %s not loaded", page)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
