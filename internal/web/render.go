package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageHome      = "home"
	PageSignIn    = "signin"
	PageEmployees = "employees"
	PageProject   = "project"
	PageProfile   = "profile"
	PageError     = "error"
)

var pageNames = []string{PageHome, PageSignIn, PageEmployees, PageProject, PageProfile, PageError}

// Page is the data every template receives.
type Page struct {
	Title   string
	Session *internal.Session
	Error   string
	Notice  string
	Data    any
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"date":       formatDate,
		"pathEscape": url.PathEscape,
		"profileURL": ProfilePath,
		"projectURL": func(name string) string { return "/projects/" + url.PathEscape(name) },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes the page with status. The template runs into a buffer first so a
// failing template never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.logger.Error("unknown page template", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		r.logger.Error("failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Error("failed to write page", "page", name, "error", err)
	}
}

// RenderError shows the error page. AppErrors keep their status and message; anything
// else is a 500 with a generic message.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong."
	if appErr, ok := internal.IsAppError(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		status = appErr.StatusCode
		message = appErr.GetDetailedMessage()
	} else {
		r.logger.Error("page failed", "path", req.URL.Path, "error", err)
	}

	r.Render(w, status, PageError, Page{
		Title:   http.StatusText(status),
		Session: internal.SessionFromContext(req.Context()),
		Error:   message,
	})
}

// componentEscaper turns QueryEscape output into encodeURIComponent output: spaces
// become %20 and !'()* stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ProfilePath builds /profile/<identifier>, escaping the identifier the way
// encodeURIComponent does so emails keep their @ encoded.
func ProfilePath(identifier string) string {
	return "/profile/" + componentEscaper.Replace(url.QueryEscape(identifier))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
