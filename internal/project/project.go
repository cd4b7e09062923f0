package project

import (
	"fmt"
	"strings"

	"estateweb/internal/querycache"
)

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = fmt.Errorf("project %w", querycache.ErrNotFound)

// Category classifies a project by delivery stage.
type Category string

const (
	CategoryHandover Category = "HANDOVER"
	CategoryOngoing  Category = "ONGOING"
	CategoryUpcoming Category = "UPCOMING"

	// CategoryAll is accepted by filters and matches every project.
	CategoryAll Category = "ALL"
)

// Categories lists the concrete categories in display order.
var Categories = []Category{CategoryHandover, CategoryOngoing, CategoryUpcoming}

// ParseCategory accepts a category case-insensitively. "completed" is an
// alias for HANDOVER, matching the public URL.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL":
		return CategoryAll, true
	case "HANDOVER", "COMPLETED":
		return CategoryHandover, true
	case "ONGOING":
		return CategoryOngoing, true
	case "UPCOMING":
		return CategoryUpcoming, true
	}
	return "", false
}

type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

type DocumentType string

const (
	DocumentPDF   DocumentType = "pdf"
	DocumentDoc   DocumentType = "doc"
	DocumentOther DocumentType = "other"
)

type Document struct {
	Name string       `json:"name"`
	URL  string       `json:"url"`
	Type DocumentType `json:"type"`
}

type Specification struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Project is one development shown in the gallery.
type Project struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       Category        `json:"category"`
	Location       string          `json:"location,omitempty"`
	Label          string          `json:"label,omitempty"`
	Images         []Image         `json:"images"`
	Documents      []Document      `json:"documents,omitempty"`
	Features       []string        `json:"features,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
}

// PrimaryImage returns the image flagged primary, or the first image.
func (p Project) PrimaryImage() (Image, bool) {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(p.Images) == 0 {
		return Image{}, false
	}
	return p.Images[0], true
}

// ListFilter narrows a project listing. The zero value lists everything.
type ListFilter struct {
	Category Category `json:"category,omitempty"`
	Search   string   `json:"search,omitempty"`
}

// IsZero reports whether f selects the full collection.
func (f ListFilter) IsZero() bool {
	return (f.Category == "" || f.Category == CategoryAll) && f.Search == ""
}

// Apply runs the category filter and then the search filter.
func (f ListFilter) Apply(projects []Project) []Project {
	return Search(FilterByCategory(projects, f.Category), f.Search)
}

// FilterByCategory keeps projects whose category equals c, in order.
// An empty or ALL category keeps everything.
func FilterByCategory(projects []Project, c Category) []Project {
	out := make([]Project, 0, len(projects))
	if c == "" || c == CategoryAll {
		return append(out, projects...)
	}
	for _, p := range projects {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// Search keeps projects whose title, description or location contains q,
// ignoring case. An empty q keeps everything; q is matched as given.
func Search(projects []Project, q string) []Project {
	out := make([]Project, 0, len(projects))
	needle := strings.ToLower(q)
	if needle == "" {
		return append(out, projects...)
	}
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Location), needle) {
			out = append(out, p)
		}
	}
	return out
}
