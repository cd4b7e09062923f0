package property

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(properties []Property) []int {
	out := make([]int, 0, len(properties))
	for _, p := range properties {
		out = append(out, p.ID)
	}
	return out
}

func TestFilters_Apply(t *testing.T) {
	catalog := Catalog()

	tests := []struct {
		name    string
		filters Filters
		want    []int
	}{
		{name: "zero keeps all", filters: Filters{}, want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{name: "price range", filters: Filters{MinPrice: 3000000, MaxPrice: 7000000}, want: []int{1, 2, 5}},
		{name: "status", filters: Filters{Statuses: []Status{StatusForRent, StatusSold}}, want: []int{4, 8}},
		{name: "bedrooms and state", filters: Filters{MinBedrooms: 6, State: "ca"}, want: []int{3, 9}},
		{name: "type", filters: Filters{PropertyTypes: []Type{TypeCondo}}, want: []int{2, 4, 8}},
		{name: "conjunction", filters: Filters{PropertyTypes: []Type{TypeCondo}, Statuses: []Status{StatusForSale}}, want: []int{2}},
		{name: "area cap", filters: Filters{MaxArea: 2000}, want: []int{8}},
		{name: "no match", filters: Filters{City: "Dhaka"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filters.Apply(catalog)))
		})
	}
}

func TestParseFilters(t *testing.T) {
	q := url.Values{
		"minPrice":      {"1000000"},
		"maxBedrooms":   {"4"},
		"statuses":      {"for-sale", "Sold"},
		"propertyTypes": {"Condo"},
		"city":          {" Brooklyn "},
	}

	f, err := ParseFilters(q)
	require.NoError(t, err)
	assert.Equal(t, Filters{
		MinPrice:      1000000,
		MaxBedrooms:   4,
		Statuses:      []Status{StatusForSale, StatusSold},
		PropertyTypes: []Type{TypeCondo},
		City:          "Brooklyn",
	}, f)

	roundTrip, err := ParseFilters(f.Values())
	require.NoError(t, err)
	assert.Equal(t, f, roundTrip)
}

func TestParseFilters_Invalid(t *testing.T) {
	_, err := ParseFilters(url.Values{"minPrice": {"cheap"}, "statuses": {"Leased"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minPrice")
	assert.Contains(t, err.Error(), "statuses")

	f, err := ParseFilters(url.Values{"minPrice": {""}})
	require.NoError(t, err)
	assert.True(t, f.IsZero())
}

func TestSearchLocation(t *testing.T) {
	catalog := Catalog()

	assert.Equal(t, []int{2, 8}, ids(SearchLocation(catalog, "ny")))
	assert.Equal(t, []int{4}, ids(SearchLocation(catalog, "MIAMI")))
	assert.Empty(t, SearchLocation(catalog, "dhaka"))
}

func TestFeatured(t *testing.T) {
	catalog := Catalog()

	assert.Equal(t, []int{3, 9, 6, 7, 2, 1}, ids(Featured(catalog, 0)))
	assert.Equal(t, []int{3, 9}, ids(Featured(catalog, 2)))
	assert.NotContains(t, ids(Featured(catalog, 20)), 8)
}

func TestValidSearch(t *testing.T) {
	_, err := validSearch("ny")
	assert.ErrorIs(t, err, ErrQueryTooShort)

	_, err = validSearch("  ab  ")
	assert.ErrorIs(t, err, ErrQueryTooShort)

	q, err := validSearch(" bos ")
	require.NoError(t, err)
	assert.Equal(t, "bos", q)
}

func TestPrimaryImage(t *testing.T) {
	// no flag: the first image wins regardless of Order
	p := Property{Images: []Image{{URL: "b", Order: 2}, {URL: "a", Order: 1}}}
	img, ok := p.PrimaryImage()
	require.True(t, ok)
	assert.Equal(t, "b", img.URL)

	p.Images = append(p.Images, Image{URL: "c", Order: 3, IsPrimary: true})
	img, _ = p.PrimaryImage()
	assert.Equal(t, "c", img.URL)

	_, ok = Property{}.PrimaryImage()
	assert.False(t, ok)
}
