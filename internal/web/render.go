package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventops/rooming-dashboard/internal/core/domain"
	"github.com/eventops/rooming-dashboard/internal/web/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// page template file -> root template
var pages = map[string]string{
	"dashboard":   "layout",
	"users":       "layout",
	"user_detail": "layout",
	"settings":    "layout",
	"error":       "layout",
	"login":       "bare",
}

var funcs = template.FuncMap{
	"sidebar": func() []view.NavItem { return view.Sidebar },
	"roles":   func() []domain.UserRole { return view.Roles },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	},
}

// Renderer executes the embedded page templates. It satisfies echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
	roots map[string]string
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages)), roots: pages}
	for name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, r.roots[name], data)
}
