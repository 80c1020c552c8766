package services

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Sort orders accepted by the public search. Anything else falls back to
// SortRelevance and the echoed facet state is normalized accordingly.
const (
	SortRelevance   = "relevance"
	SortPriceAsc    = "priceAsc"
	SortPriceDesc   = "priceDesc"
	SortNewest      = "newest"
	SortLargestArea = "largestArea"
)

// PageSize is the fixed public search page size.
const PageSize = 12

// Facets is the parsed facet set for one search call. Pointer fields are nil
// when the facet was absent or failed to parse: a malformed value is treated
// exactly like an absent one, never as an error.
type Facets struct {
	FreeText         string
	Purpose          string
	PropertyType     string
	City             string
	District         string
	MinRooms         *int
	MinBathrooms     *int
	MinParkingSpaces *int
	MinArea          *float64
	MinPrice         *float64
	MaxPrice         *float64
	FurnishedState   string
	PetFriendly      bool
	AcceptsFinancing bool
	HasPhotos        bool
	AmenityIDs       []uint
	SortOrder        string
	Page             int

	Applied AppliedFacets
}

// AppliedFacets echoes the facet values the caller sent so the filter UI can
// re-render its state. Values are echoed as received except SortOrder, which
// is normalized, and Page, which is clamped to 1.
type AppliedFacets struct {
	FreeText         string   `json:"freeText"`
	Purpose          string   `json:"purpose"`
	PropertyType     string   `json:"propertyType"`
	City             string   `json:"city"`
	District         string   `json:"district"`
	MinRooms         string   `json:"minRooms"`
	MinBathrooms     string   `json:"minBathrooms"`
	MinParkingSpaces string   `json:"minParkingSpaces"`
	MinArea          string   `json:"minArea"`
	MinPrice         string   `json:"minPrice"`
	MaxPrice         string   `json:"maxPrice"`
	FurnishedState   string   `json:"furnishedState"`
	PetFriendly      string   `json:"petFriendly"`
	AcceptsFinancing string   `json:"acceptsFinancing"`
	HasPhotos        string   `json:"hasPhotos"`
	AmenityIDs       []string `json:"amenityIds"`
	SortOrder        string   `json:"sortOrder"`
	Page             int      `json:"page"`
}

// ParseFacets maps a flat query-parameter set onto Facets. Every facet is
// optional and parsed independently; numeric facets that fail to parse are
// dropped silently.
func ParseFacets(values url.Values) Facets {
	f := Facets{
		FreeText:         strings.TrimSpace(values.Get("freeText")),
		Purpose:          strings.TrimSpace(values.Get("purpose")),
		PropertyType:     strings.TrimSpace(values.Get("propertyType")),
		City:             strings.TrimSpace(values.Get("city")),
		District:         strings.TrimSpace(values.Get("district")),
		FurnishedState:   strings.TrimSpace(values.Get("furnishedState")),
		MinRooms:         intFacet(values, "minRooms"),
		MinBathrooms:     intFacet(values, "minBathrooms"),
		MinParkingSpaces: intFacet(values, "minParkingSpaces"),
		MinArea:          floatFacet(values, "minArea"),
		MinPrice:         floatFacet(values, "minPrice"),
		MaxPrice:         floatFacet(values, "maxPrice"),
		PetFriendly:      values.Get("petFriendly") == "true",
		AcceptsFinancing: values.Get("acceptsFinancing") == "true",
		HasPhotos:        values.Get("hasPhotos") == "true",
		AmenityIDs:       amenityFacet(values["amenityIds"]),
	}

	switch values.Get("sortOrder") {
	case SortPriceAsc:
		f.SortOrder = SortPriceAsc
	case SortPriceDesc:
		f.SortOrder = SortPriceDesc
	case SortNewest:
		f.SortOrder = SortNewest
	case SortLargestArea:
		f.SortOrder = SortLargestArea
	default:
		f.SortOrder = SortRelevance
	}

	f.Page = 1
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 1 {
		f.Page = p
	}

	f.Applied = AppliedFacets{
		FreeText:         f.FreeText,
		Purpose:          f.Purpose,
		PropertyType:     f.PropertyType,
		City:             f.City,
		District:         f.District,
		MinRooms:         values.Get("minRooms"),
		MinBathrooms:     values.Get("minBathrooms"),
		MinParkingSpaces: values.Get("minParkingSpaces"),
		MinArea:          values.Get("minArea"),
		MinPrice:         values.Get("minPrice"),
		MaxPrice:         values.Get("maxPrice"),
		FurnishedState:   f.FurnishedState,
		PetFriendly:      values.Get("petFriendly"),
		AcceptsFinancing: values.Get("acceptsFinancing"),
		HasPhotos:        values.Get("hasPhotos"),
		AmenityIDs:       values["amenityIds"],
		SortOrder:        f.SortOrder,
		Page:             f.Page,
	}
	if f.Applied.AmenityIDs == nil {
		f.Applied.AmenityIDs = []string{}
	}

	return f
}

func intFacet(values url.Values, key string) *int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func floatFacet(values url.Values, key string) *float64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// amenityFacet parses the amenity id list, dropping malformed entries and
// duplicates. The filter is conjunctive: one predicate per id.
func amenityFacet(raw []string) []uint {
	var ids []uint
	for _, r := range raw {
		n, err := strconv.ParseUint(strings.TrimSpace(r), 10, 32)
		if err != nil {
			continue
		}
		if !slices.Contains(ids, uint(n)) {
			ids = append(ids, uint(n))
		}
	}
	return ids
}
