package project

import (
	"context"
)

// StaticRepo serves the catalog compiled into the binary.
type StaticRepo struct {
	projects []Project
}

// NewStaticRepo serves projects; a nil slice serves the built-in catalog.
func NewStaticRepo(projects []Project) *StaticRepo {
	if projects == nil {
		projects = Catalog()
	}
	return &StaticRepo{projects: projects}
}

func (r *StaticRepo) List(ctx context.Context, f ListFilter) ([]Project, error) {
	return f.Apply(r.projects), nil
}

func (r *StaticRepo) GetByID(ctx context.Context, id int) (Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}

// Catalog returns a copy of the built-in project list.
func Catalog() []Project {
	return []Project{
		{
			ID:          1,
			Title:       "AROZA HOME",
			Description: "Completed residential project delivering modern living spaces with quality finishes.",
			Category:    CategoryHandover,
			Location:    "Uttara",
			Images: []Image{
				{URL: "/static/projects/handover/aroza-home.jpg", Alt: "Aroza Home - Uttara", IsPrimary: true},
			},
			Features: []string{"Modern architectural design", "Prime location in Uttara"},
		},
		{
			ID:          2,
			Title:       "PREMIER ISHAQUE GARDEN",
			Description: "Exclusive residential project combining luxury with comfortable living.",
			Category:    CategoryHandover,
			Location:    "Niketon, Gulshan",
			Images: []Image{
				{URL: "/static/projects/handover/ishaque-garden.jpg", Alt: "Premier Ishaque Garden - Niketon, Gulshan", IsPrimary: true},
			},
			Features: []string{"Premium location in Niketon", "Modern amenities and facilities"},
		},
		{
			ID:          3,
			Title:       "PRIME RAIYAN",
			Description: "Premium residential development with contemporary architecture.",
			Category:    CategoryHandover,
			Location:    "Niketon, Gulshan",
			Images: []Image{
				{URL: "/static/projects/handover/prime-raiyan.jpg", Alt: "Prime Raiyan - Niketon, Gulshan", IsPrimary: true},
			},
		},
		{
			ID:          4,
			Title:       "PRIME RAJ",
			Description: "Residential project designed for upscale living in a prime location.",
			Category:    CategoryHandover,
			Location:    "Niketon, Gulshan",
			Images: []Image{
				{URL: "/static/projects/handover/prime-raj.jpg", Alt: "Prime Raj - Niketon, Gulshan", IsPrimary: true},
			},
		},
		{
			ID:          5,
			Title:       "PREMIER FAHMIDA GREEN",
			Description: "Residential project with natural light, ventilation and modern amenities near top universities.",
			Category:    CategoryOngoing,
			Location:    "Block-C, Bashundhara R/A",
			Label:       "GREEN",
			Images: []Image{
				{URL: "/static/projects/ongoing/fahmida-green/0000.png", Alt: "Premier Fahmida Green - Main Perspective", IsPrimary: true},
				{URL: "/static/projects/ongoing/fahmida-green/001.jpg", Alt: "Premier Fahmida Green - View 1"},
				{URL: "/static/projects/ongoing/fahmida-green/002.jpg", Alt: "Premier Fahmida Green - View 2"},
			},
			Documents: []Document{
				{Name: "Building Features", URL: "/static/projects/ongoing/fahmida-green/building-features.pdf", Type: DocumentPDF},
			},
			Features: []string{"Full-height windows", "Double height entrance", "Clean and spacious floor plans"},
		},
		{
			ID:          6,
			Title:       "PREMIER MAYA NIBASH",
			Description: "Boutique residential building in a quiet neighbourhood.",
			Category:    CategoryOngoing,
			Location:    "Block-E, Lalmatia",
			Label:       "MAYA",
			Images: []Image{
				{URL: "/static/projects/ongoing/maya-nibash/front.jpg", Alt: "Premier Maya Nibash - Front"},
				{URL: "/static/projects/ongoing/maya-nibash/main.jpg", Alt: "Premier Maya Nibash - Perspective", IsPrimary: true},
			},
			Specifications: []Specification{
				{Label: "Land Area", Value: "5 Katha"},
				{Label: "Storeys", Value: "G+9"},
			},
		},
		{
			ID:          7,
			Title:       "PREMIER HOMES",
			Description: "Family apartments with generous common spaces.",
			Category:    CategoryOngoing,
			Images: []Image{
				{URL: "/static/projects/ongoing/premier-homes.jpg", Alt: "Premier Homes", IsPrimary: true},
			},
		},
		{
			ID:          8,
			Title:       "PREMIER ZAYFA MANOR",
			Description: "Manor-style development pairing traditional elegance with modern comfort.",
			Category:    CategoryUpcoming,
			Images: []Image{
				{URL: "/static/projects/upcoming/zayfa-manor.jpeg", Alt: "Premier Zayfa Manor", IsPrimary: true},
			},
			Features: []string{"Exclusive manor design", "Quality construction standards"},
		},
	}
}
