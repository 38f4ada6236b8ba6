// Package templates embeds the HTML served by the intake service: the public
// enrollment form and the guardian confirmation email.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

const (
	Form         = "form.html"
	Confirmation = "confirmation.html"
)

// Parse loads the named templates with the given helper functions.
func Parse(funcs template.FuncMap, names ...string) (*template.Template, error) {
	return template.New(names[0]).Funcs(funcs).ParseFS(files, names...)
}
