package httpapi

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/i474232898/weather-clock/internal/dashboard"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(templatesFS, "templates/dashboard.html"))

func renderPage(w io.Writer, state dashboard.State) error {
	return pageTemplate.Execute(w, state)
}
