package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFacetsDefaults(t *testing.T) {
	f := ParseFacets(url.Values{})

	assert.Equal(t, "", f.FreeText)
	assert.Nil(t, f.MinRooms)
	assert.Nil(t, f.MinArea)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.False(t, f.PetFriendly)
	assert.False(t, f.HasPhotos)
	assert.Empty(t, f.AmenityIDs)
	assert.Equal(t, SortRelevance, f.SortOrder)
	assert.Equal(t, 1, f.Page)

	// Echo state must always be renderable, even when nothing was sent.
	assert.NotNil(t, f.Applied.AmenityIDs)
	assert.Equal(t, SortRelevance, f.Applied.SortOrder)
	assert.Equal(t, 1, f.Applied.Page)
}

func TestParseFacetsMalformedNumericsAreDropped(t *testing.T) {
	values := url.Values{}
	values.Set("minRooms", "abc")
	values.Set("minBathrooms", "2.5")
	values.Set("minArea", "not-a-number")
	values.Set("minPrice", "1e3x")

	f := ParseFacets(values)

	assert.Nil(t, f.MinRooms)
	assert.Nil(t, f.MinBathrooms)
	assert.Nil(t, f.MinArea)
	assert.Nil(t, f.MinPrice)

	// The raw values are still echoed so the UI shows what the user typed.
	assert.Equal(t, "abc", f.Applied.MinRooms)
	assert.Equal(t, "2.5", f.Applied.MinBathrooms)
}

func TestParseFacetsValidNumerics(t *testing.T) {
	values := url.Values{}
	values.Set("minRooms", "3")
	values.Set("minBathrooms", "2")
	values.Set("minParkingSpaces", "1")
	values.Set("minArea", "75.5")
	values.Set("minPrice", "100000")
	values.Set("maxPrice", "350000.99")

	f := ParseFacets(values)

	require.NotNil(t, f.MinRooms)
	assert.Equal(t, 3, *f.MinRooms)
	require.NotNil(t, f.MinBathrooms)
	assert.Equal(t, 2, *f.MinBathrooms)
	require.NotNil(t, f.MinParkingSpaces)
	assert.Equal(t, 1, *f.MinParkingSpaces)
	require.NotNil(t, f.MinArea)
	assert.Equal(t, 75.5, *f.MinArea)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 100000.0, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 350000.99, *f.MaxPrice)
}

func TestParseFacetsSortOrder(t *testing.T) {
	cases := map[string]string{
		"priceAsc":    SortPriceAsc,
		"priceDesc":   SortPriceDesc,
		"newest":      SortNewest,
		"largestArea": SortLargestArea,
		"relevance":   SortRelevance,
		"bogus":       SortRelevance,
		"":            SortRelevance,
		"PRICEASC":    SortRelevance,
	}

	for raw, want := range cases {
		values := url.Values{}
		if raw != "" {
			values.Set("sortOrder", raw)
		}
		f := ParseFacets(values)
		assert.Equal(t, want, f.SortOrder, "sortOrder=%q", raw)
		assert.Equal(t, want, f.Applied.SortOrder, "echoed sortOrder=%q", raw)
	}
}

func TestParseFacetsBoolFlagsRequireLiteralTrue(t *testing.T) {
	values := url.Values{}
	values.Set("petFriendly", "true")
	values.Set("acceptsFinancing", "1")
	values.Set("hasPhotos", "TRUE")

	f := ParseFacets(values)

	assert.True(t, f.PetFriendly)
	assert.False(t, f.AcceptsFinancing)
	assert.False(t, f.HasPhotos)
}

func TestParseFacetsAmenityIDs(t *testing.T) {
	values := url.Values{"amenityIds": {"3", "1", "3", "x", "-2", "1"}}

	f := ParseFacets(values)

	assert.Equal(t, []uint{3, 1}, f.AmenityIDs)
	// The echo keeps the raw list untouched.
	assert.Equal(t, []string{"3", "1", "3", "x", "-2", "1"}, f.Applied.AmenityIDs)
}

func TestParseFacetsPage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"abc": 1,
		"0":   1,
		"-3":  1,
		"1":   1,
		"4":   4,
	}

	for raw, want := range cases {
		values := url.Values{}
		if raw != "" {
			values.Set("page", raw)
		}
		f := ParseFacets(values)
		assert.Equal(t, want, f.Page, "page=%q", raw)
		assert.Equal(t, want, f.Applied.Page, "echoed page=%q", raw)
	}
}
