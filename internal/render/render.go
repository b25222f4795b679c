// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render handles HTML template rendering, flash messages and
// markdown post bodies.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/oblog-go/internal/middleware"
	"github.com/olegiv/oblog-go/internal/model"
)

// Session keys for flash messages.
const (
	sessionKeyFlash     = "flash"
	sessionKeyFlashType = "flash_type"
)

// Renderer handles template rendering with parsed-template caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
	markdown       goldmark.Markdown
	sanitizer      *bluemonday.Policy
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page template against the base layout and
// the shared partials. Template names are "<dir>/<file>" without extension,
// e.g. "blog/index".
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	baseLayout := "layouts/base.html"

	for _, dir := range []string{"blog", "auth", "pages"} {
		pages, err := templateFiles(templatesFS, dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", dir, err)
		}

		for _, tmplPath := range pages {
			name := dir + "/" + strings.TrimSuffix(filepath.Base(tmplPath), ".html")

			files := []string{baseLayout}
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}

			r.templates[name] = tmpl
		}
	}

	return nil
}

// templateFiles returns all .html files in a directory.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory might not exist, that's ok
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 3:04 PM")
		},
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
		"monthName": model.MonthName,
		"markdown":  r.Markdown,
	}
}

// Markdown converts a markdown post body to sanitized HTML.
func (r *Renderer) Markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		slog.Error("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes())) // #nosec G203 -- sanitized above
}

// Render executes the named template with the given data, injecting the
// current user and any pending flash message.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data map[string]any) {
	tmpl, ok := r.templates[name]
	if !ok {
		slog.Error("template not found", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = make(map[string]any)
	}

	if user := middleware.GetUser(req); user != nil {
		data["CurrentUser"] = user
	}

	if flash := r.sessionManager.PopString(req.Context(), sessionKeyFlash); flash != "" {
		data["Flash"] = flash
		flashType := r.sessionManager.PopString(req.Context(), sessionKeyFlashType)
		if flashType == "" {
			flashType = "info"
		}
		data["FlashType"] = flashType
	}

	// Render to a buffer first so template errors do not produce a
	// half-written response.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// SetFlash stores a flash message in the session for the next render.
func (r *Renderer) SetFlash(req *http.Request, message, messageType string) {
	r.sessionManager.Put(req.Context(), sessionKeyFlash, message)
	r.sessionManager.Put(req.Context(), sessionKeyFlashType, messageType)
}
