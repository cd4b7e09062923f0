// Package web renders the public site: the home page, the project gallery,
// property listings, the contact form and the login form.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"estateweb/internal/enquiry"
	"estateweb/internal/httpx"
	"estateweb/internal/platform/apiclient"
	"estateweb/internal/project"
	"estateweb/internal/property"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{
	"home.html",
	"projects.html",
	"project.html",
	"properties.html",
	"property.html",
	"contact.html",
	"login.html",
	"error.html",
}

// Deps are the services the pages read from. Properties may be nil, in
// which case the listing pages answer 404.
type Deps struct {
	Projects   *project.Service
	Properties *property.Service
	Enquiries  *enquiry.Service
	Tokens     apiclient.TokenStore
}

type Server struct {
	projects   *project.Service
	properties *property.Service
	enquiries  *enquiry.Service
	tokens     apiclient.TokenStore
	templates  map[string]*template.Template
}

func New(deps Deps) (*Server, error) {
	if deps.Projects == nil || deps.Enquiries == nil || deps.Tokens == nil {
		return nil, fmt.Errorf("web: projects, enquiries and tokens are required")
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{
		projects:   deps.Projects,
		properties: deps.Properties,
		enquiries:  deps.Enquiries,
		tokens:     deps.Tokens,
		templates:  templates,
	}, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		out[page] = t
	}
	return out, nil
}

// Register mounts the page routes on mux. The catch-all renders the
// not-found page.
func (s *Server) Register(mux *http.ServeMux) {
	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /{$}", s.Home)
	mux.HandleFunc("GET /projects/completed", s.categoryPage(project.CategoryHandover))
	mux.HandleFunc("GET /projects/ongoing", s.categoryPage(project.CategoryOngoing))
	mux.HandleFunc("GET /projects/upcoming", s.categoryPage(project.CategoryUpcoming))
	mux.HandleFunc("GET /projects/{projectId}", s.ProjectDetail)
	mux.HandleFunc("GET /properties", s.Properties)
	mux.HandleFunc("GET /properties/{propertyId}", s.PropertyDetail)
	mux.HandleFunc("GET /contact", s.ContactForm)
	mux.HandleFunc("POST /contact", s.SubmitContact)
	mux.HandleFunc("GET /login", s.LoginForm)
	mux.HandleFunc("POST /login", s.Login)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("/", s.NotFound)
}

type navItem struct {
	Label    string
	Path     string
	Children []navItem
}

var nav = []navItem{
	{Label: "Home", Path: "/"},
	{Label: "Projects", Path: "/projects/ongoing", Children: []navItem{
		{Label: "Ongoing Projects", Path: "/projects/ongoing"},
		{Label: "Upcoming Projects", Path: "/projects/upcoming"},
	}},
	{Label: "Completed Projects", Path: "/projects/completed"},
	{Label: "Properties", Path: "/properties"},
	{Label: "Contact Us", Path: "/contact"},
}

// view is handed to every template.
type view struct {
	Title    string
	Path     string
	Nav      []navItem
	SignedIn bool
	Footer   contactView
	Content  any
}

func (s *Server) newView(r *http.Request, title string, content any) view {
	return view{
		Title:    title,
		Path:     r.URL.Path,
		Nav:      nav,
		SignedIn: s.tokens.Token() != "",
		Footer:   contactView{Source: enquiry.SourceFooter, Sent: r.URL.Query().Get("sent") == "1"},
		Content:  content,
	}
}

// render executes page into a buffer so a template failure never leaves a
// half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, v view) {
	t, ok := s.templates[page]
	if !ok {
		log.Printf("web template missing request_id=%s page=%s", httpx.RequestIDFrom(r), page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		log.Printf("web render failed request_id=%s page=%s error=%v", httpx.RequestIDFrom(r), page, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var funcs = template.FuncMap{
	"price":        formatPrice,
	"categoryPath": categoryPath,
	"categoryName": categoryName,
	"lower":        strings.ToLower,
	"projectCover": func(p project.Project) project.Image {
		img, _ := p.PrimaryImage()
		return img
	},
	"propertyCover": func(p property.Property) property.Image {
		img, _ := p.PrimaryImage()
		return img
	},
	"active": func(current, path string) bool {
		if path == "/" {
			return current == "/"
		}
		return current == path || strings.HasPrefix(current, path+"/")
	},
}

// formatPrice renders 4500000 as "$4,500,000" and -123 as "-$123".
func formatPrice(v float64) string {
	n := int64(v)
	var b strings.Builder
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	b.WriteByte('$')
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

func categoryPath(c project.Category) string {
	switch c {
	case project.CategoryHandover:
		return "/projects/completed"
	case project.CategoryOngoing:
		return "/projects/ongoing"
	case project.CategoryUpcoming:
		return "/projects/upcoming"
	}
	return "/"
}

func categoryName(c project.Category) string {
	switch c {
	case project.CategoryHandover:
		return "Completed"
	case project.CategoryOngoing:
		return "Ongoing"
	case project.CategoryUpcoming:
		return "Upcoming"
	}
	return "All"
}
