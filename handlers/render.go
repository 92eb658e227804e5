package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"cinecontext/models"
	"cinecontext/services/catalog"
	"cinecontext/services/metadata"
)

//go:embed templates/*.html
var templateFS embed.FS

// RendererOptions configures the page templates.
type RendererOptions struct {
	Images metadata.ImageCDN
	// Locale drives date formatting and the page lang attribute.
	Locale        string
	IsWatchlisted func(kind models.Kind, id int64) bool
}

// PageData is what every page template receives.
type PageData struct {
	Title     string
	Nav       string
	Lang      string
	Path      string
	Query     string
	RequestID string
	Status    int
	Data      any
}

// Renderer holds one template set per page, each sharing the layout and
// partials.
type Renderer struct {
	pages map[string]*template.Template
	lang  string
}

func NewRenderer(opts RendererOptions) (*Renderer, error) {
	if opts.IsWatchlisted == nil {
		opts.IsWatchlisted = func(models.Kind, int64) bool { return false }
	}
	locale := metadata.NormalizeLanguage(opts.Locale)

	base, err := template.New("base").Funcs(templateFuncs(opts, locale)).ParseFS(templateFS, "templates/base.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template), lang: strings.SplitN(locale, "-", 2)[0]}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "base" || name == "partials" {
			continue
		}
		set, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = set
	}
	return r, nil
}

// Page renders a full page. Rendering goes to a buffer first so a template
// failure still produces a clean 500.
func (rd *Renderer) Page(w http.ResponseWriter, status int, name string, data PageData) error {
	set, ok := rd.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return fmt.Errorf("unknown page %q", name)
	}
	if data.Lang == "" {
		data.Lang = rd.lang
	}
	data.Status = status

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, "base", data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func templateFuncs(opts RendererOptions, locale string) template.FuncMap {
	cdn := opts.Images
	return template.FuncMap{
		"poster":      func(p string) string { return cdn.Poster(p, "w342") },
		"posterLarge": func(p string) string { return cdn.Poster(p, "w500") },
		"backdrop":    func(p string) string { return cdn.Backdrop(p, "w1280") },
		"still":       func(p string) string { return cdn.Backdrop(p, "w780") },
		"logo":        func(p string) string { return cdn.Logo(p, "w300") },
		"profile":     func(p string) string { return cdn.Profile(p, "w185") },
		"date":        func(d string) string { return catalog.FormatDate(d, locale) },
		"watchlisted": opts.IsWatchlisted,
		"join":        strings.Join,
		"rating":      func(x float64) string { return fmt.Sprintf("%.1f", x) },
		"runtime":     formatRuntime,
		"kindLabel":   kindLabel,
		"withParam":   withParam,
		"add":         func(a, b int) int { return a + b },
		"hasKind":     hasKind,
		"hasGenre":    hasGenre,
		"fieldError":  fieldError,
	}
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func kindLabel(kind models.Kind) string {
	switch kind {
	case models.KindMovie:
		return "Movie"
	case models.KindShow:
		return "TV Show"
	case models.KindPerson:
		return "Person"
	default:
		return string(kind)
	}
}

// withParam returns uri with key set to value; an empty value removes key.
// The page parameter resets whenever another parameter changes.
func withParam(uri, key string, value any) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	q := u.Query()
	v := fmt.Sprint(value)
	if v == "" {
		q.Del(key)
	} else {
		q.Set(key, v)
	}
	if key != "page" && key != "trailer" {
		q.Del("page")
	}
	u.RawQuery = q.Encode()
	return u.RequestURI()
}

func hasKind(kinds []models.Kind, kind string) bool {
	for _, k := range kinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

func hasGenre(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func fieldError(result *models.FormResult, field string) string {
	if result == nil {
		return ""
	}
	return result.Errors[field]
}
