package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"imobiliaria-server/models"
	"imobiliaria-server/services"
	"imobiliaria-server/storage"
	"imobiliaria-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

const (
	featuredListingCount = 6
	similarListingCount  = 4

	citiesCacheKey    = "filters:cities"
	amenitiesCacheKey = "filters:amenities"
	filtersCacheTTL   = 5 * time.Minute
)

func searchService() *services.SearchService {
	return services.NewSearchService(storage.DB)
}

// GET /api/listings/search
// Facet values are query parameters; malformed values are ignored, never an
// error, so this endpoint only fails when the store does.
func SearchListings(ctx iris.Context) {
	page, err := searchService().Search(ctx.Request().Context(), ctx.Request().URL.Query())
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to search listings")
		return
	}
	ctx.JSON(page)
}

// GET /api/listings/{id:uint}
func GetListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	listing, err := searchService().FindActiveListing(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(ctx, http.StatusNotFound, "not_found", "listing not found")
			return
		}
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to load listing")
		return
	}

	similar, err := searchService().SimilarListings(ctx.Request().Context(), listing, similarListingCount)
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to load similar listings")
		return
	}

	ctx.JSON(iris.Map{"data": listing, "similar": similar})
}

// GET /api/listings/featured
// Home-page cards: each listing with its cover photo and headline prices
// pulled out so the client does not dig through the associations.
func GetFeaturedListings(ctx iris.Context) {
	featured, err := searchService().FeaturedListings(ctx.Request().Context(), featuredListingCount)
	if err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to load featured listings")
		return
	}

	cards := make([]iris.Map, 0, len(featured))
	for i := range featured {
		listing := &featured[i]
		cards = append(cards, iris.Map{
			"listing":     listing,
			"coverPhoto":  listing.CoverPhoto(),
			"salePrice":   listing.PriceFor(models.PurposeSale),
			"rentalPrice": listing.PriceFor(models.PurposeRental),
		})
	}
	ctx.JSON(iris.Map{"data": cards})
}

// GET /api/listings/filters
// Facet metadata for the filter UI. Cities and amenities change rarely, so
// both sit behind a short Redis TTL.
func GetSearchFilters(ctx iris.Context) {
	reqCtx := ctx.Request().Context()

	var cities []string
	if raw, err := storage.Redis.Get(reqCtx, citiesCacheKey).Result(); err == nil {
		json.Unmarshal([]byte(raw), &cities)
	}
	if cities == nil {
		var err error
		cities, err = searchService().DistinctCities(reqCtx)
		if err != nil {
			utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to load filter data")
			return
		}
		if encoded, err := json.Marshal(cities); err == nil {
			storage.Redis.Set(reqCtx, citiesCacheKey, encoded, filtersCacheTTL)
		}
	}

	var amenities []models.AmenityTag
	if raw, err := storage.Redis.Get(reqCtx, amenitiesCacheKey).Result(); err == nil {
		json.Unmarshal([]byte(raw), &amenities)
	}
	if amenities == nil {
		if err := storage.DB.Order("name ASC").Find(&amenities).Error; err != nil {
			utils.JSONError(ctx, http.StatusInternalServerError, "server_error", "failed to load filter data")
			return
		}
		if encoded, err := json.Marshal(amenities); err == nil {
			storage.Redis.Set(reqCtx, amenitiesCacheKey, encoded, filtersCacheTTL)
		}
	}

	ctx.JSON(iris.Map{
		"cities":    cities,
		"amenities": amenities,
		"propertyTypes": []string{
			models.PropertyTypeHouse,
			models.PropertyTypeApartment,
			models.PropertyTypeCommercial,
			models.PropertyTypeLand,
		},
		"purposes": []string{
			models.PurposeSale,
			models.PurposeRental,
			models.PurposeShortStay,
		},
		"furnishedStates": []string{
			models.FurnishedFull,
			models.FurnishedSemi,
			models.FurnishedNone,
		},
		"sortOrders": []string{
			services.SortRelevance,
			services.SortPriceAsc,
			services.SortPriceDesc,
			services.SortNewest,
			services.SortLargestArea,
		},
	})
}

// invalidateFilterCache drops the cached filter metadata after admin writes
// that can change it (new city, renamed amenity).
func invalidateFilterCache(ctx iris.Context) {
	storage.Redis.Del(ctx.Request().Context(), citiesCacheKey, amenitiesCacheKey)
}
