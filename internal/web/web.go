// Package web serves the portfolio page, its HTMX fragments and the embedded
// assets over gin.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/notify"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"notices": func(ns []notify.Notice) string {
		s, err := notify.Trigger(ns...)
		if err != nil {
			return ""
		}
		return s
	},
	"revealClass": func(visible bool) string {
		if visible {
			return "reveal is-visible"
		}
		return "reveal"
	},
	"initial": func(name string) string {
		for _, r := range strings.TrimSpace(name) {
			return strings.ToUpper(string(r))
		}
		return ""
	},
}

// Templates parses the embedded page and fragment templates.
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// Static returns the embedded CSS and JS rooted at static/.
func Static() (http.FileSystem, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	return http.FS(sub), nil
}

// Mount installs templates, static assets and the routes of h on r.
func Mount(r *gin.Engine, h *Handler) error {
	t, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(t)

	assets, err := Static()
	if err != nil {
		return err
	}
	r.StaticFS("/static", assets)

	h.RegisterRoutes(r)
	return nil
}
