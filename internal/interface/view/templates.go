package view

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/oksasatya/microservices-console/internal/application"
	"github.com/oksasatya/microservices-console/internal/domain/entity"
)

//go:embed templates/*.html.tmpl
var FS embed.FS

//go:embed assets
var assets embed.FS

// Assets returns the stylesheet directory for static serving.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Template names
const (
	PageTemplate     = "page"
	UsersTemplate    = "users"
	ProductsTemplate = "products"
	StatusTemplate   = "status"
	ConfirmTemplate  = "confirm"
)

const createdLayout = "02 January 2006, 15:04"

// Page is the data bound to the full page template.
type Page struct {
	AppName        string
	View           application.View
	Tabs           []application.Tab
	PollIntervalMs int
}

// Confirm is the data bound to the delete confirmation dialog.
type Confirm struct {
	AppName string
	Prompt  string
	Action  string
	Back    string
}

func formatCreated(ts entity.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format(createdLayout)
}

func formatPrice(p entity.Price) string {
	if !p.Valid {
		return "-"
	}
	return "$" + p.String()
}

func statusText(s entity.ServiceStatus) string {
	switch s {
	case entity.StatusHealthy:
		return "✅ Healthy"
	case entity.StatusDown:
		return "❌ Down"
	default:
		return "⏳ Checking"
	}
}

func statusClass(s entity.ServiceStatus) string {
	switch s {
	case entity.StatusHealthy:
		return "status healthy"
	case entity.StatusDown:
		return "status down"
	default:
		return "status unknown"
	}
}

func serviceLabel(s entity.Service) string {
	switch s {
	case entity.UserService:
		return "User Service"
	case entity.ProductService:
		return "Product Service"
	default:
		return string(s)
	}
}

func tabClass(base string, active application.Tab, t application.Tab) string {
	if active == t {
		return base + " active"
	}
	return base
}

func baseFuncs() htmpl.FuncMap {
	return htmpl.FuncMap{
		"created":      formatCreated,
		"price":        formatPrice,
		"statusText":   statusText,
		"statusClass":  statusClass,
		"serviceLabel": serviceLabel,
		"tabClass":     tabClass,
		"title":        func(t application.Tab) string { return strings.ToUpper(string(t[:1])) + string(t[1:]) },
	}
}

// Renderer binds view models to the embedded templates. It is safe for concurrent use.
type Renderer struct {
	tpl *htmpl.Template
}

// NewRenderer parses every embedded template once.
func NewRenderer() (*Renderer, error) {
	tpl, err := htmpl.New("").Funcs(baseFuncs()).ParseFS(FS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// MustRenderer is NewRenderer that panics, for start-up wiring.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes the named template into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.tpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("exec %q: %w", name, err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
