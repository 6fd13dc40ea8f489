package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	viewTemplate = "templates/view.tmpl"
	formTemplate = "templates/form.tmpl"
)

// TemplatesFS exposes the embedded template bundle so hosts can copy or
// extend it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
