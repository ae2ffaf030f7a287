// Package web holds the embedded page templates and static assets of the site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/ieeespac/spac_site/internal/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// StaticFiles contains the files served under /static.
//
//go:embed static/*
var StaticFiles embed.FS

// SiteInfo is the conference copy shared by every page.
type SiteInfo struct {
	ConferenceName string
	DateLabel      string
	Venue          string
	HeroVideoURL   string
	TicketURL      string
	DiscordURL     string
	MaxResumeMB    string
	MaxResumeBytes int64
}

type PageData struct {
	Site     SiteInfo
	Active   string
	Form     *dto.FormState
	Timeline []dto.TimelineElement
}

type Renderer struct {
	tmpl *template.Template
	site SiteInfo
}

type fieldView struct {
	Label    string
	ID       string
	Name     string
	Type     string
	Value    string
	Error    bool
	Required bool
}

var funcs = template.FuncMap{
	"field": func(label, id, name, typ, value string, hasError, required bool) fieldView {
		return fieldView{
			Label:    label,
			ID:       id,
			Name:     name,
			Type:     typ,
			Value:    value,
			Error:    hasError,
			Required: required,
		}
	},
}

func NewRenderer(site SiteInfo) (*Renderer, error) {
	tmpl, err := template.New("site").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, site: site}, nil
}

// Render executes the named page with the site info filled in.
func (r *Renderer) Render(w io.Writer, name string, data PageData) error {
	data.Site = r.site
	if data.Active == "" {
		data.Active = name
	}
	return r.tmpl.ExecuteTemplate(w, name, data)
}
