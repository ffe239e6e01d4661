package report

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

func RenderHTML(w io.Writer, d Dashboard) error {
	return page.ExecuteTemplate(w, "dashboard.html", d)
}
