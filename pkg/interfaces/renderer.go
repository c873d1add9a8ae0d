package interfaces

// TemplateRenderer renders a named template with the supplied context and
// returns the resulting HTML document.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}
