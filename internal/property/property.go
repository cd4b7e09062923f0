package property

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"estateweb/internal/querycache"
)

var (
	ErrNotFound = fmt.Errorf("property %w", querycache.ErrNotFound)

	// ErrQueryTooShort is returned by location search for queries of
	// MinSearchLength-1 characters or fewer.
	ErrQueryTooShort = errors.New("search query must be longer than 2 characters")
)

const (
	MinSearchLength      = 3
	DefaultFeaturedLimit = 6
)

type Type string

const (
	TypeSingleFamily Type = "Single Family"
	TypeCondo        Type = "Condo"
	TypeTownhouse    Type = "Townhouse"
	TypeMultiFamily  Type = "Multi-Family"
	TypeLand         Type = "Land"
	TypeCommercial   Type = "Commercial"
)

type Status string

const (
	StatusForSale Status = "For Sale"
	StatusForRent Status = "For Rent"
	StatusSold    Status = "Sold"
	StatusRented  Status = "Rented"
	StatusPending Status = "Pending"
)

// Statuses lists every listing status in display order.
var Statuses = []Status{StatusForSale, StatusForRent, StatusSold, StatusRented, StatusPending}

type FeatureCategory string

const (
	FeatureInterior   FeatureCategory = "Interior"
	FeatureExterior   FeatureCategory = "Exterior"
	FeatureAppliances FeatureCategory = "Appliances"
	FeatureCommunity  FeatureCategory = "Community"
	FeatureOther      FeatureCategory = "Other"
)

type Feature struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Category FeatureCategory `json:"category"`
}

type Image struct {
	ID        int    `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
	Order     int    `json:"order"`
}

// Property is a single listing.
type Property struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Location     string    `json:"location"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zipCode"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    int       `json:"bathrooms"`
	Area         int       `json:"area"`
	LotSize      *int      `json:"lotSize,omitempty"`
	YearBuilt    int       `json:"yearBuilt"`
	PropertyType Type      `json:"propertyType"`
	Status       Status    `json:"status"`
	Features     []Feature `json:"features"`
	Images       []Image   `json:"images"`
	AgentID      int       `json:"agentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PrimaryImage returns the image flagged primary, else the first image.
func (p Property) PrimaryImage() (Image, bool) {
	if len(p.Images) == 0 {
		return Image{}, false
	}
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	return p.Images[0], true
}

// Payload is the writable part of a property, used for create and update.
type Payload struct {
	Title        string    `json:"title" validate:"required,notblank,max=200"`
	Description  string    `json:"description" validate:"max=5000"`
	Price        float64   `json:"price" validate:"gte=0"`
	Location     string    `json:"location" validate:"required,notblank"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zipCode"`
	Bedrooms     int       `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int       `json:"bathrooms" validate:"gte=0"`
	Area         int       `json:"area" validate:"gte=0"`
	LotSize      *int      `json:"lotSize,omitempty"`
	YearBuilt    int       `json:"yearBuilt" validate:"omitempty,gte=1800"`
	PropertyType Type      `json:"propertyType" validate:"omitempty,oneof='Single Family' Condo Townhouse Multi-Family Land Commercial"`
	Status       Status    `json:"status" validate:"required,oneof='For Sale' 'For Rent' Sold Rented Pending"`
	Features     []Feature `json:"features,omitempty"`
	Images       []Image   `json:"images,omitempty"`
	AgentID      int       `json:"agentId"`
}

// Apply copies the payload onto p, leaving id and timestamps untouched.
func (in Payload) Apply(p Property) Property {
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Location = in.Location
	p.Address = in.Address
	p.City = in.City
	p.State = in.State
	p.ZipCode = in.ZipCode
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.Area = in.Area
	p.LotSize = in.LotSize
	p.YearBuilt = in.YearBuilt
	p.PropertyType = in.PropertyType
	p.Status = in.Status
	p.Features = in.Features
	p.Images = in.Images
	p.AgentID = in.AgentID
	return p
}

// Filters narrow a listing. Zero fields are ignored; the rest must all match.
type Filters struct {
	MinPrice      float64  `json:"minPrice,omitempty"`
	MaxPrice      float64  `json:"maxPrice,omitempty"`
	MinBedrooms   int      `json:"minBedrooms,omitempty"`
	MaxBedrooms   int      `json:"maxBedrooms,omitempty"`
	MinBathrooms  int      `json:"minBathrooms,omitempty"`
	MaxBathrooms  int      `json:"maxBathrooms,omitempty"`
	MinArea       int      `json:"minArea,omitempty"`
	MaxArea       int      `json:"maxArea,omitempty"`
	PropertyTypes []Type   `json:"propertyTypes,omitempty"`
	Statuses      []Status `json:"statuses,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
}

func (f Filters) IsZero() bool {
	return f.MinPrice == 0 && f.MaxPrice == 0 &&
		f.MinBedrooms == 0 && f.MaxBedrooms == 0 &&
		f.MinBathrooms == 0 && f.MaxBathrooms == 0 &&
		f.MinArea == 0 && f.MaxArea == 0 &&
		len(f.PropertyTypes) == 0 && len(f.Statuses) == 0 &&
		f.City == "" && f.State == ""
}

// Matches reports whether p satisfies every set filter.
func (f Filters) Matches(p Property) bool {
	switch {
	case f.MinPrice > 0 && p.Price < f.MinPrice,
		f.MaxPrice > 0 && p.Price > f.MaxPrice,
		f.MinBedrooms > 0 && p.Bedrooms < f.MinBedrooms,
		f.MaxBedrooms > 0 && p.Bedrooms > f.MaxBedrooms,
		f.MinBathrooms > 0 && p.Bathrooms < f.MinBathrooms,
		f.MaxBathrooms > 0 && p.Bathrooms > f.MaxBathrooms,
		f.MinArea > 0 && p.Area < f.MinArea,
		f.MaxArea > 0 && p.Area > f.MaxArea:
		return false
	}
	if len(f.PropertyTypes) > 0 && !slices.Contains(f.PropertyTypes, p.PropertyType) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, p.Status) {
		return false
	}
	if f.City != "" && !strings.EqualFold(f.City, p.City) {
		return false
	}
	if f.State != "" && !strings.EqualFold(f.State, p.State) {
		return false
	}
	return true
}

// Apply keeps the matching properties in order. The result is never nil.
func (f Filters) Apply(properties []Property) []Property {
	out := make([]Property, 0, len(properties))
	for _, p := range properties {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Values encodes the filters as query parameters.
func (f Filters) Values() url.Values {
	v := url.Values{}
	setFloat := func(k string, n float64) {
		if n > 0 {
			v.Set(k, strconv.FormatFloat(n, 'f', -1, 64))
		}
	}
	setInt := func(k string, n int) {
		if n > 0 {
			v.Set(k, strconv.Itoa(n))
		}
	}
	setFloat("minPrice", f.MinPrice)
	setFloat("maxPrice", f.MaxPrice)
	setInt("minBedrooms", f.MinBedrooms)
	setInt("maxBedrooms", f.MaxBedrooms)
	setInt("minBathrooms", f.MinBathrooms)
	setInt("maxBathrooms", f.MaxBathrooms)
	setInt("minArea", f.MinArea)
	setInt("maxArea", f.MaxArea)
	for _, t := range f.PropertyTypes {
		v.Add("propertyTypes", string(t))
	}
	for _, s := range f.Statuses {
		v.Add("statuses", string(s))
	}
	if f.City != "" {
		v.Set("city", f.City)
	}
	if f.State != "" {
		v.Set("state", f.State)
	}
	return v
}

// ParseFilters reads filters from query parameters. Empty values are
// skipped; malformed numbers are reported by parameter name.
func ParseFilters(q url.Values) (Filters, error) {
	var f Filters
	var bad []string

	parseFloat := func(k string, dst *float64) {
		if s := q.Get(k); s != "" {
			n, err := strconv.ParseFloat(s, 64)
			if err != nil || n < 0 {
				bad = append(bad, k)
				return
			}
			*dst = n
		}
	}
	parseInt := func(k string, dst *int) {
		if s := q.Get(k); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				bad = append(bad, k)
				return
			}
			*dst = n
		}
	}

	parseFloat("minPrice", &f.MinPrice)
	parseFloat("maxPrice", &f.MaxPrice)
	parseInt("minBedrooms", &f.MinBedrooms)
	parseInt("maxBedrooms", &f.MaxBedrooms)
	parseInt("minBathrooms", &f.MinBathrooms)
	parseInt("maxBathrooms", &f.MaxBathrooms)
	parseInt("minArea", &f.MinArea)
	parseInt("maxArea", &f.MaxArea)

	for _, t := range q["propertyTypes"] {
		if t != "" {
			f.PropertyTypes = append(f.PropertyTypes, Type(t))
		}
	}
	for _, s := range q["statuses"] {
		if s == "" {
			continue
		}
		st, ok := ParseStatus(s)
		if !ok {
			bad = append(bad, "statuses")
			continue
		}
		f.Statuses = append(f.Statuses, st)
	}
	f.City = strings.TrimSpace(q.Get("city"))
	f.State = strings.TrimSpace(q.Get("state"))

	if len(bad) > 0 {
		return Filters{}, fmt.Errorf("invalid filter parameters: %s", strings.Join(bad, ", "))
	}
	return f, nil
}

// ParseStatus matches a status case-insensitively, accepting dashes or
// underscores for spaces ("for-sale").
func ParseStatus(s string) (Status, bool) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	for _, st := range Statuses {
		if strings.EqualFold(string(st), norm) {
			return st, true
		}
	}
	return "", false
}

// SearchLocation keeps properties whose location, address, city or state
// contains q, ignoring case.
func SearchLocation(properties []Property, q string) []Property {
	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]Property, 0, len(properties))
	for _, p := range properties {
		if strings.Contains(strings.ToLower(p.Location), needle) ||
			strings.Contains(strings.ToLower(p.Address), needle) ||
			strings.Contains(strings.ToLower(p.City), needle) ||
			strings.Contains(strings.ToLower(p.State), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns up to limit listings still on the market, highest price
// first. A non-positive limit means DefaultFeaturedLimit.
func Featured(properties []Property, limit int) []Property {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	out := make([]Property, 0, limit)
	for _, p := range properties {
		if p.Status == StatusForSale || p.Status == StatusForRent {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b Property) int {
		switch {
		case a.Price > b.Price:
			return -1
		case a.Price < b.Price:
			return 1
		}
		return 0
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// validSearch trims q and rejects queries that are too short.
func validSearch(q string) (string, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinSearchLength {
		return "", ErrQueryTooShort
	}
	return q, nil
}
