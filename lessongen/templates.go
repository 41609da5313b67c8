package lessongen

import (
	"embed"
	"fmt"
)

//go:embed templates/*.tmpl
var builtinTemplates embed.FS

// templateFiles maps each pedagogy style to its built-in template.
var templateFiles = map[PedagogyStyle]string{
	PedagogyConceptFirst:     "templates/concept_lesson.py.tmpl",
	PedagogyIntegrationFirst: "templates/integration_lesson.py.tmpl",
	PedagogyApplicationFirst: "templates/app_scaffold.py.tmpl",
}

// BuiltinTemplate returns the embedded fallback template for a pedagogy
// style, used when a domain's project carries no template of its own.
func BuiltinTemplate(style PedagogyStyle) (string, error) {
	file, exists := templateFiles[style]
	if !exists {
		return "", fmt.Errorf("no built-in template for pedagogy style %q", style)
	}
	content, err := builtinTemplates.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading built-in template for %q: %w", style, err)
	}
	return string(content), nil
}
