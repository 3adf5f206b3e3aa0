package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"inventaris/internal/models"
)

//go:embed templates
var content embed.FS

// partials are parsed into every page.
var partials = []string{
	"inventaris/form.html",
}

// pages are rendered inside layout.html.
var pages = []string{
	"login.html",
	"error.html",
	"inventaris/index.html",
	"inventaris/create.html",
	"inventaris/edit.html",
}

// Engine renders embedded html/template pages for fiber. It satisfies
// fiber.Views.
type Engine struct {
	storageURL string
	templates  map[string]*template.Template
}

// New creates an engine. storageURL prefixes image paths in the pages.
func New(storageURL string) *Engine {
	return &Engine{storageURL: strings.TrimRight(storageURL, "/")}
}

func (e *Engine) funcMap() template.FuncMap {
	return template.FuncMap{
		"asset": func(p *string) string {
			if p == nil || *p == "" {
				return ""
			}
			return e.storageURL + "/" + strings.TrimLeft(*p, "/")
		},
		"deref": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
		"number": func(f float64) string {
			return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
		},
		"add": func(a, b int) int { return a + b },
		"selected": func(v uint, current string) bool {
			return fmt.Sprint(v) == current
		},
		"tanggal": models.FormatTanggal,
	}
}

// Load parses every page together with the layout.
func (e *Engine) Load() error {
	tfs, err := fs.Sub(content, "templates")
	if err != nil {
		return fmt.Errorf("opening templates: %w", err)
	}

	layout, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return fmt.Errorf("reading layout template: %w", err)
	}
	shared := make([][]byte, 0, len(partials))
	for _, name := range partials {
		b, err := fs.ReadFile(tfs, name)
		if err != nil {
			return fmt.Errorf("reading partial %s: %w", name, err)
		}
		shared = append(shared, b)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		body, err := fs.ReadFile(tfs, page)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl, err := template.New(page).Funcs(e.funcMap()).Parse(string(layout))
		if err != nil {
			return fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		for i, b := range shared {
			if tmpl, err = tmpl.Parse(string(b)); err != nil {
				return fmt.Errorf("parsing partial %s for %s: %w", partials[i], page, err)
			}
		}
		if tmpl, err = tmpl.Parse(string(body)); err != nil {
			return fmt.Errorf("parsing template %s: %w", page, err)
		}
		templates[strings.TrimSuffix(page, ".html")] = tmpl
	}

	e.templates = templates
	return nil
}

// Render executes the named page through the layout.
func (e *Engine) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	tmpl, ok := e.templates[strings.TrimSuffix(name, ".html")]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
