package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"title":       func() string { return Title },
	"placeholder": func() string { return Placeholder },
	"emptyText":   func() string { return EmptyText },
	"submitLabel": func() string { return SubmitLabel },
}).ParseFS(templateFS, "templates/*.html"))

// RenderPage writes the full GUI document.
func RenderPage(w io.Writer, p Page) error {
	if err := templates.ExecuteTemplate(w, "page.html", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// RenderGroups writes only the grouped list, for in-place refreshes.
func RenderGroups(w io.Writer, p Page) error {
	if err := templates.ExecuteTemplate(w, "groups", p); err != nil {
		return fmt.Errorf("render groups: %w", err)
	}
	return nil
}
