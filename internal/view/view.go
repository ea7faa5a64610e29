// Package view html-страницы сервиса: шаблоны, статика и форматирование.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Page имя страницы, совпадает с именем файла шаблона
type Page string

const (
	PageIndex    Page = "index"
	PageAbout    Page = "about"
	PageAPIDocs  Page = "api_docs"
	PageNotFound Page = "not_found"
)

var pages = []Page{PageIndex, PageAbout, PageAPIDocs, PageNotFound}

// PageData общие данные для layout. Content - данные конкретной страницы.
type PageData struct {
	Title   string
	Active  Page
	Toasts  []Toast
	Content interface{}
}

// Renderer отрисовывает страницы в общем layout
type Renderer struct {
	templates map[Page]*template.Template
}

func NewRenderer(f *Formatter) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate":   f.Date,
		"formatNumber": f.Number,
	}
	r := &Renderer{templates: make(map[Page]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("layout.gohtml").
			Funcs(funcs).
			ParseFS(templatesFS, "templates/layout.gohtml", fmt.Sprintf("templates/%s.gohtml", page))
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Render отрисовывает страницу в буфер, ответ пишется только при успешной отрисовке
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, page Page, data PageData) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	data.Active = page

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler раздает встроенные скрипты и стили
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
