package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed content/*.md
var contentFS embed.FS

//go:embed static
var staticFS embed.FS

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Typographer),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderMarkdown converts markdown to HTML, falling back to escaped text.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// pageContent renders content/<name>.md. A missing file renders as empty.
func pageContent(name string) template.HTML {
	data, err := fs.ReadFile(contentFS, "content/"+name+".md")
	if err != nil {
		slog.Warn("content_missing", "page", name, "error", err.Error())
		return ""
	}
	return renderMarkdown(string(data))
}

// page is the data every template receives.
type page struct {
	Title   string
	Path    string
	Content template.HTML
	Data    any
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, p page) {
	renderTemplateStatus(w, r, http.StatusOK, templateName, p)
}

// renderTemplateStatus renders layout.html around templateName and writes it with status.
// Rendering happens into a buffer so a template failure never sends a partial page.
func renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, p page) {
	p.Path = r.URL.Path

	funcMap := template.FuncMap{
		"csrfToken":      func() string { return csrf.Token(r) },
		"csrfField":      func() template.HTML { return csrf.TemplateField(r) },
		"renderMarkdown": renderMarkdown,
		"site":           func() any { return site },
		"year":           func() int { return timeNow().Year() },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, p); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// handleHome serves the club homepage.
func handleHome(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "home.html", page{
		Title:   site.Title,
		Content: pageContent("home"),
	})
}

// handleTraining serves the pace calculator page. Paces are computed in the
// browser by pace.wasm; this handler only serves the shell.
func handleTraining(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "training.html", page{
		Title:   "Training",
		Content: pageContent("training"),
	})
}

// handleHealthz reports liveness.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// staticHandler serves embedded assets under /static/.
func staticHandler() http.Handler {
	return http.FileServerFS(staticFS)
}
