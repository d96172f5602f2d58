package template

import (
	"bytes"
	"fmt"
	"html/template"
)

// Data is what the certificate page gets to interpolate.
type Data struct {
	Name string
	Date string
}

// Renderer turns the certificate template file into markup for a participant.
// The file is parsed on every call so template edits are picked up between
// requests without a restart, which is what /preview iteration relies on.
type Renderer struct {
	templatePath string
}

func NewRenderer(templatePath string) *Renderer {
	return &Renderer{templatePath: templatePath}
}

func (r *Renderer) Render(name, date string) (string, error) {
	tmpl, err := template.ParseFiles(r.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse certificate template %s: %w", r.templatePath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Option("missingkey=error").Execute(&buf, Data{Name: name, Date: date}); err != nil {
		return "", fmt.Errorf("failed to execute certificate template: %w", err)
	}

	return buf.String(), nil
}
