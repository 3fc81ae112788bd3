// Package view renders the HTML pages of the blog.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/quillpost/quillpost-go/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Data is the value every page template executes against.
type Data struct {
	Title    string
	Identity model.Identity
	IsAdmin  bool
	Notice   string

	Posts  []model.Post
	Post   *model.Post
	Author *model.User

	// Form holds the submitted or pre-filled form; Errors maps its field
	// names to messages.
	Form   any
	Errors map[string]string
	IsEdit bool

	Status  int
	Message string
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded page templates.
func New() (*Renderer, error) {
	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		tmpl, err := template.ParseFS(templatesFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		r.pages[path.Base(file)] = tmpl
	}

	return r, nil
}

// Render executes the named page and writes it with the given status.
// Nothing is written if execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
