package page

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func Render(w io.Writer, v *PageView) error {
	return pageTemplate.ExecuteTemplate(w, "page", v)
}
