package theme

import (
	"fmt"
	"html/template"
	"strings"
)

// Renderer executes theme templates by name. It satisfies
// interfaces.TemplateRenderer.
type Renderer struct {
	templates *template.Template
}

// RenderTemplate renders the named template with the supplied data.
func (r *Renderer) RenderTemplate(name string, data any) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("theme renderer: no templates loaded")
	}

	var b strings.Builder
	if err := r.templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("theme render %s: %w", name, err)
	}
	return b.String(), nil
}
