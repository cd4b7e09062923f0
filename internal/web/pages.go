package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"estateweb/internal/project"
	"estateweb/internal/property"
)

type service struct {
	Title       string
	Description string
	Image       string
}

var services = []service{
	{Title: "HOUSE DESIGN", Description: "We design private and commercial buildings with a focus on futuristic functionality and aesthetics.", Image: "/static/img/service-house.svg"},
	{Title: "INTERIOR DESIGN", Description: "We create inspiring spaces where comfort meets aesthetics and the smart technologies of the future.", Image: "/static/img/service-interior.svg"},
	{Title: "PUBLIC SPACES", Description: "Comprehensive architectural solutions for offices, leisure spaces, and modern infrastructure.", Image: "/static/img/service-public.svg"},
	{Title: "3D VISUALIZATION", Description: "We showcase ideas before their realization through detailed and highly realistic visualizations.", Image: "/static/img/service-3d.svg"},
}

type portfolioTab struct {
	Category project.Category
	Label    string
	Active   bool
}

type homeView struct {
	Services  []service
	Tabs      []portfolioTab
	Portfolio []project.Project
	Featured  []property.Property
}

// Home renders the landing page. The portfolio reads the full project
// collection, which later detail pages reuse from the cache.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	all, err := s.projects.List(r.Context(), project.ListFilter{})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	tab, ok := project.ParseCategory(r.URL.Query().Get("tab"))
	if !ok {
		tab = project.CategoryAll
	}
	tabs := []portfolioTab{{Category: project.CategoryAll, Label: "All", Active: tab == project.CategoryAll}}
	for _, c := range project.Categories {
		tabs = append(tabs, portfolioTab{Category: c, Label: categoryName(c), Active: tab == c})
	}

	content := homeView{
		Services:  services,
		Tabs:      tabs,
		Portfolio: project.FilterByCategory(all, tab),
	}
	if s.properties != nil {
		featured, err := s.properties.Featured(r.Context(), property.DefaultFeaturedLimit)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		content.Featured = featured
	}

	s.render(w, r, http.StatusOK, "home.html", s.newView(r, "Home", content))
}

type projectsView struct {
	Category project.Category
	Heading  string
	Query    string
	Projects []project.Project
}

// categoryPage lists one category, narrowed by the ?q= search box.
func (s *Server) categoryPage(c project.Category) http.HandlerFunc {
	heading := categoryName(c) + " Projects"
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		projects, err := s.projects.List(r.Context(), project.ListFilter{Category: c, Search: q})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "projects.html", s.newView(r, heading, projectsView{
			Category: c,
			Heading:  heading,
			Query:    q,
			Projects: projects,
		}))
	}
}

type projectView struct {
	Project project.Project
	Primary project.Image
	Gallery []project.Image
}

// ProjectDetail renders /projects/{projectId}.
func (s *Server) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("projectId"))
	if err != nil || id <= 0 {
		s.NotFound(w, r)
		return
	}

	p, err := s.projects.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	v := projectView{Project: p}
	v.Primary, _ = p.PrimaryImage()
	for _, img := range p.Images {
		if img != v.Primary {
			v.Gallery = append(v.Gallery, img)
		}
	}
	s.render(w, r, http.StatusOK, "project.html", s.newView(r, p.Title, v))
}

type propertiesView struct {
	Statuses   []property.Status
	Selected   property.Status
	MinPrice   string
	MaxPrice   string
	Query      string
	Notice     string
	Properties []property.Property
}

// Properties renders /properties with status and price filters, or a
// location search when ?q= is set.
func (s *Server) Properties(w http.ResponseWriter, r *http.Request) {
	if s.properties == nil {
		s.NotFound(w, r)
		return
	}

	query := r.URL.Query()
	v := propertiesView{
		Statuses: property.Statuses,
		MinPrice: query.Get("minPrice"),
		MaxPrice: query.Get("maxPrice"),
		Query:    strings.TrimSpace(query.Get("q")),
	}

	if v.Query != "" {
		found, err := s.properties.SearchByLocation(r.Context(), v.Query)
		switch {
		case errors.Is(err, property.ErrQueryTooShort):
			v.Notice = "Enter at least 3 characters to search by location."
		case err != nil:
			s.fail(w, r, err)
			return
		default:
			v.Properties = found
		}
		s.render(w, r, http.StatusOK, "properties.html", s.newView(r, "Properties", v))
		return
	}

	filters, err := property.ParseFilters(query)
	if err != nil {
		v.Notice = "Some filters were not understood and were ignored."
		filters = property.Filters{}
	}
	if st, ok := property.ParseStatus(query.Get("status")); ok {
		v.Selected = st
		filters.Statuses = []property.Status{st}
	}

	listed, err := s.properties.List(r.Context(), filters)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v.Properties = listed
	s.render(w, r, http.StatusOK, "properties.html", s.newView(r, "Properties", v))
}

type propertyView struct {
	Property property.Property
	Primary  property.Image
}

// PropertyDetail renders /properties/{propertyId}.
func (s *Server) PropertyDetail(w http.ResponseWriter, r *http.Request) {
	if s.properties == nil {
		s.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(r.PathValue("propertyId"))
	if err != nil || id <= 0 {
		s.NotFound(w, r)
		return
	}

	p, err := s.properties.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	v := propertyView{Property: p}
	v.Primary, _ = p.PrimaryImage()
	s.render(w, r, http.StatusOK, "property.html", s.newView(r, p.Title, v))
}
