package services

import (
	"context"
	"net/url"
	"strings"

	"imobiliaria-server/models"

	"gorm.io/gorm"
)

// SearchService translates a facet set into a query plan against the entity
// store and returns deduplicated, ordered, paginated pages of active
// listings. It is stateless and read-only: one instance is safe for any
// number of concurrent callers.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// ListingPage is one page of search results plus the metadata the filter UI
// needs to re-render itself.
type ListingPage struct {
	Listings   []models.Listing `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"perPage"`
	TotalPages int              `json:"totalPages"`
	Applied    AppliedFacets    `json:"appliedFacets"`
}

// Search runs the full pipeline: parse facets, collect matching row ids in
// sort order, deduplicate by listing identity keeping each listing's first
// occurrence, paginate, and load the page's listings with their associations.
func (s *SearchService) Search(ctx context.Context, values url.Values) (*ListingPage, error) {
	facets := ParseFacets(values)

	ids, err := s.matchingIDs(ctx, facets)
	if err != nil {
		return nil, err
	}

	ids = dedupeFirst(ids)
	total := int64(len(ids))
	pageIDs := pageSlice(ids, facets.Page, PageSize)

	listings, err := s.loadPage(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	return &ListingPage{
		Listings:   listings,
		Total:      total,
		Page:       facets.Page,
		PerPage:    PageSize,
		TotalPages: totalPages(total, PageSize),
		Applied:    facets.Applied,
	}, nil
}

// matchingIDs returns the ids of every listing satisfying the facet set, in
// the facet sort order. With the price sort orders the price join yields one
// row per price entry, so the slice may contain duplicates; all filter
// predicates are EXISTS subqueries and never multiply rows themselves.
func (s *SearchService) matchingIDs(ctx context.Context, f Facets) ([]uint, error) {
	q := s.db.WithContext(ctx).Model(&models.Listing{}).
		Where("listings.status = ?", models.ListingStatusActive)

	if f.FreeText != "" {
		like := "%" + strings.ToLower(f.FreeText) + "%"
		q = q.Where(
			"LOWER(listings.title) LIKE ? OR LOWER(listings.address) LIKE ? OR LOWER(listings.district) LIKE ? OR LOWER(listings.city) LIKE ? OR LOWER(listings.description) LIKE ?",
			like, like, like, like, like,
		)
	}
	if f.Purpose != "" {
		q = q.Where(
			"EXISTS (SELECT 1 FROM price_entries pe WHERE pe.listing_id = listings.id AND pe.deleted_at IS NULL AND pe.purpose = ?)",
			f.Purpose,
		)
	}
	if f.PropertyType != "" {
		q = q.Where("listings.property_type = ?", f.PropertyType)
	}
	if f.City != "" {
		q = q.Where("LOWER(listings.city) = LOWER(?)", f.City)
	}
	if f.District != "" {
		q = q.Where("LOWER(listings.district) LIKE ?", "%"+strings.ToLower(f.District)+"%")
	}
	if f.MinRooms != nil {
		q = q.Where("listings.rooms >= ?", *f.MinRooms)
	}
	if f.MinBathrooms != nil {
		q = q.Where("listings.bathrooms >= ?", *f.MinBathrooms)
	}
	if f.MinParkingSpaces != nil {
		q = q.Where("listings.parking_spaces >= ?", *f.MinParkingSpaces)
	}
	if f.MinArea != nil {
		q = q.Where("listings.usable_area >= ?", *f.MinArea)
	}
	// Price bounds are independent: each one is satisfied by at least one
	// price entry on its own, matching the original search behavior.
	if f.MinPrice != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM price_entries pe WHERE pe.listing_id = listings.id AND pe.deleted_at IS NULL AND pe.value >= ?)",
			*f.MinPrice,
		)
	}
	if f.MaxPrice != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM price_entries pe WHERE pe.listing_id = listings.id AND pe.deleted_at IS NULL AND pe.value <= ?)",
			*f.MaxPrice,
		)
	}
	if f.FurnishedState != "" {
		q = q.Where("listings.furnished_state = ?", f.FurnishedState)
	}
	if f.PetFriendly {
		q = q.Where("listings.pet_friendly = ?", true)
	}
	if f.AcceptsFinancing {
		q = q.Where("listings.accepts_financing = ?", true)
	}
	if f.HasPhotos {
		q = q.Where("EXISTS (SELECT 1 FROM photos p WHERE p.listing_id = listings.id AND p.deleted_at IS NULL)")
	}
	// Amenities are conjunctive: one predicate per id, all must hold.
	for _, amenityID := range f.AmenityIDs {
		q = q.Where(
			"EXISTS (SELECT 1 FROM listing_amenities la WHERE la.listing_id = listings.id AND la.amenity_tag_id = ?)",
			amenityID,
		)
	}

	switch f.SortOrder {
	case SortPriceAsc, SortPriceDesc:
		// The price sorts key on individual price rows, so the join may
		// repeat a listing once per entry. Only rows satisfying the price
		// facets feed the sort: a listing must never be positioned by an
		// entry of another purpose or outside the requested bounds. The
		// trailing ascending id tie-break keeps the row order stable;
		// dedupeFirst then pins a multi-price listing to its
		// first-encountered row.
		join := "LEFT JOIN price_entries ON price_entries.listing_id = listings.id AND price_entries.deleted_at IS NULL"
		var joinArgs []interface{}
		if f.Purpose != "" {
			join += " AND price_entries.purpose = ?"
			joinArgs = append(joinArgs, f.Purpose)
		}
		if f.MinPrice != nil {
			join += " AND price_entries.value >= ?"
			joinArgs = append(joinArgs, *f.MinPrice)
		}
		if f.MaxPrice != nil {
			join += " AND price_entries.value <= ?"
			joinArgs = append(joinArgs, *f.MaxPrice)
		}
		q = q.Joins(join, joinArgs...)
		if f.SortOrder == SortPriceAsc {
			q = q.Order("price_entries.value ASC NULLS LAST, price_entries.id ASC, listings.id ASC")
		} else {
			q = q.Order("price_entries.value DESC NULLS LAST, price_entries.id ASC, listings.id ASC")
		}
	case SortNewest:
		q = q.Order("listings.created_at DESC, listings.id DESC")
	case SortLargestArea:
		q = q.Order("listings.usable_area DESC, listings.id DESC")
	default: // relevance
		q = q.Order("listings.created_at DESC, listings.updated_at DESC, listings.id DESC")
	}

	var ids []uint
	if err := q.Pluck("listings.id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// loadPage fetches the page's listings with every association the
// presentation layer renders, preserving the incoming id order.
func (s *SearchService) loadPage(ctx context.Context, ids []uint) ([]models.Listing, error) {
	listings := make([]models.Listing, 0, len(ids))
	if len(ids) == 0 {
		return listings, nil
	}

	var rows []models.Listing
	err := s.preloaded(s.db.WithContext(ctx)).
		Where("listings.id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Listing, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			listings = append(listings, row)
		}
	}
	return listings, nil
}

// FindActiveListing returns the active listing with the given id, fully
// preloaded for the detail view. Returns gorm.ErrRecordNotFound when no
// active listing has that id; the serving layer maps that to a 404.
func (s *SearchService) FindActiveListing(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.preloaded(s.db.WithContext(ctx)).
		Where("listings.status = ?", models.ListingStatusActive).
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// SimilarListings returns up to limit active listings of the same property
// type in the same city, excluding the listing itself.
func (s *SearchService) SimilarListings(ctx context.Context, listing *models.Listing, limit int) ([]models.Listing, error) {
	var similar []models.Listing
	err := s.preloaded(s.db.WithContext(ctx)).
		Where("listings.status = ?", models.ListingStatusActive).
		Where("listings.property_type = ?", listing.PropertyType).
		Where("listings.city = ?", listing.City).
		Where("listings.id <> ?", listing.ID).
		Order("listings.created_at DESC").
		Limit(limit).
		Find(&similar).Error
	return similar, err
}

// FeaturedListings returns the most recent active listings for the home page.
func (s *SearchService) FeaturedListings(ctx context.Context, limit int) ([]models.Listing, error) {
	var featured []models.Listing
	err := s.preloaded(s.db.WithContext(ctx)).
		Where("listings.status = ?", models.ListingStatusActive).
		Order("listings.created_at DESC").
		Limit(limit).
		Find(&featured).Error
	return featured, err
}

// DistinctCities returns the ordered set of cities that currently have active
// listings, for the filter dropdown.
func (s *SearchService) DistinctCities(ctx context.Context) ([]string, error) {
	var cities []string
	err := s.db.WithContext(ctx).Model(&models.Listing{}).
		Where("listings.status = ?", models.ListingStatusActive).
		Distinct("listings.city").
		Order("listings.city ASC").
		Pluck("listings.city", &cities).Error
	return cities, err
}

func (s *SearchService) preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Prices", func(db *gorm.DB) *gorm.DB {
			return db.Order("price_entries.purpose ASC")
		}).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("photos.display_order ASC, photos.id ASC")
		}).
		Preload("Amenities", func(db *gorm.DB) *gorm.DB {
			return db.Order("amenity_tags.name ASC")
		})
}

// dedupeFirst removes duplicate ids keeping each id's first occurrence, so a
// listing matched by several joined rows stays at its earliest sort position.
func dedupeFirst(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// pageSlice returns the 1-based page of ids for the given page size.
func pageSlice(ids []uint, page, perPage int) []uint {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(ids) {
		return nil
	}
	end := start + perPage
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end]
}

func totalPages(total int64, perPage int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
