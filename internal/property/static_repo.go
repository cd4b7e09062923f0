package property

import (
	"context"
	"slices"
	"sync"
	"time"
)

// StaticRepo keeps listings in memory. It starts from the built-in catalog
// and accepts writes for the life of the process.
type StaticRepo struct {
	mu         sync.RWMutex
	properties []Property
	nextID     int
	now        func() time.Time
}

// NewStaticRepo serves properties; a nil slice serves the built-in catalog.
func NewStaticRepo(properties []Property) *StaticRepo {
	if properties == nil {
		properties = Catalog()
	}
	next := 1
	for _, p := range properties {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return &StaticRepo{properties: slices.Clone(properties), nextID: next, now: time.Now}
}

func (r *StaticRepo) List(ctx context.Context, f Filters) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return f.Apply(r.properties), nil
}

func (r *StaticRepo) GetByID(ctx context.Context, id int) (Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		return r.properties[i], nil
	}
	return Property{}, ErrNotFound
}

func (r *StaticRepo) Featured(ctx context.Context, limit int) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Featured(r.properties, limit), nil
}

func (r *StaticRepo) SearchByLocation(ctx context.Context, q string) ([]Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return SearchLocation(r.properties, q), nil
}

func (r *StaticRepo) Create(ctx context.Context, in Payload) (Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	p := in.Apply(Property{ID: r.nextID, CreatedAt: now, UpdatedAt: now})
	r.nextID++
	r.properties = append(r.properties, p)
	return p, nil
}

func (r *StaticRepo) Update(ctx context.Context, id int, in Payload) (Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return Property{}, ErrNotFound
	}
	p := in.Apply(r.properties[i])
	p.UpdatedAt = r.now().UTC()
	r.properties[i] = p
	return p, nil
}

func (r *StaticRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.properties = slices.Delete(r.properties, i, i+1)
	return nil
}

func (r *StaticRepo) index(id int) int {
	return slices.IndexFunc(r.properties, func(p Property) bool { return p.ID == id })
}

var catalogTime = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

func listing(id int, title, location, city, state string, price float64, beds, baths, area int, typ Type, status Status, photo string) Property {
	return Property{
		ID:           id,
		Title:        title,
		Location:     location,
		City:         city,
		State:        state,
		Price:        price,
		Bedrooms:     beds,
		Bathrooms:    baths,
		Area:         area,
		PropertyType: typ,
		Status:       status,
		Features:     []Feature{},
		Images: []Image{
			{ID: id, URL: "https://images.unsplash.com/" + photo + "?w=800", IsPrimary: true, Order: 1},
		},
		CreatedAt: catalogTime,
		UpdatedAt: catalogTime,
	}
}

// Catalog returns a copy of the built-in listings.
func Catalog() []Property {
	return []Property{
		listing(1, "Luxury Villa in Beverly Hills", "Beverly Hills, CA", "Beverly Hills", "CA", 4500000, 5, 4, 4200, TypeSingleFamily, StatusForSale, "photo-1613490493576-7fde63acd811"),
		listing(2, "Modern Penthouse Downtown", "Manhattan, NY", "New York", "NY", 6800000, 4, 3, 3500, TypeCondo, StatusForSale, "photo-1512917774080-9991f1c4c750"),
		listing(3, "Beachfront Estate Malibu", "Malibu, CA", "Malibu", "CA", 12500000, 6, 5, 6000, TypeSingleFamily, StatusForSale, "photo-1600596542815-ffad4c1539a9"),
		listing(4, "Contemporary Condo", "Miami Beach, FL", "Miami Beach", "FL", 2200000, 3, 2, 2100, TypeCondo, StatusForRent, "photo-1600607687939-ce8a6c25118c"),
		listing(5, "Historic Townhouse", "Boston, MA", "Boston", "MA", 3400000, 4, 3, 3200, TypeTownhouse, StatusForSale, "photo-1600585154340-be6161a56a0c"),
		listing(6, "Mountain Retreat Lodge", "Aspen, CO", "Aspen", "CO", 8900000, 7, 6, 7500, TypeSingleFamily, StatusForSale, "photo-1600047509807-ba8f99d2cdde"),
		listing(7, "Waterfront Mansion", "Seattle, WA", "Seattle", "WA", 7200000, 5, 4, 5200, TypeSingleFamily, StatusForSale, "photo-1605276374104-dee2a0ed3cd6"),
		listing(8, "Urban Loft", "Brooklyn, NY", "Brooklyn", "NY", 1800000, 2, 2, 1800, TypeCondo, StatusSold, "photo-1502672260266-1c1ef2d93688"),
		listing(9, "Spanish Colonial Estate", "Santa Barbara, CA", "Santa Barbara", "CA", 9500000, 6, 5, 6800, TypeSingleFamily, StatusForSale, "photo-1580587771525-78b9dba3b914"),
	}
}
