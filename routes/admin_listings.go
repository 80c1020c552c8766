package routes

import (
	"net/http"
	"strings"
	"time"

	"imobiliaria-server/models"
	"imobiliaria-server/storage"
	"imobiliaria-server/utils"

	"github.com/kataras/iris/v12"
)

type ListingInput struct {
	OwnerID      uint   `json:"ownerID" validate:"required"`
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description"`
	PropertyType string `json:"propertyType" validate:"required,oneof=house apartment commercial land"`
	Status       string `json:"status" validate:"omitempty,oneof=active sold rented reserved inactive"`

	Address    string  `json:"address" validate:"required"`
	District   string  `json:"district" validate:"required"`
	City       string  `json:"city" validate:"required"`
	State      string  `json:"state" validate:"required,len=2"`
	PostalCode string  `json:"postalCode"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`

	UsableArea       float64 `json:"usableArea" validate:"gte=0"`
	TotalArea        float64 `json:"totalArea" validate:"gte=0"`
	Rooms            int     `json:"rooms" validate:"gte=0"`
	Suites           int     `json:"suites" validate:"gte=0"`
	Bathrooms        int     `json:"bathrooms" validate:"gte=0"`
	ParkingSpaces    int     `json:"parkingSpaces" validate:"gte=0"`
	Floor            int     `json:"floor"`
	ConstructionYear int     `json:"constructionYear"`

	FurnishedState   string  `json:"furnishedState" validate:"omitempty,oneof=furnished semi_furnished unfurnished"`
	PetFriendly      bool    `json:"petFriendly"`
	AcceptsFinancing bool    `json:"acceptsFinancing"`
	CondoFee         float64 `json:"condoFee" validate:"gte=0"`
	PropertyTax      float64 `json:"propertyTax" validate:"gte=0"`

	AmenityIDs []uint `json:"amenityIds"`
}

// GET /api/admin/listings
func AdminListListings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	propertyType := ctx.URLParamDefault("type", "")
	city := strings.TrimSpace(ctx.URLParamDefault("city", ""))
	ownerID := ctx.URLParamDefault("owner_id", "")
	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))
	createdFrom := ctx.URLParamDefault("created_from", "")
	createdTo := ctx.URLParamDefault("created_to", "")

	q := storage.DB.Model(&models.Listing{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if propertyType != "" {
		q = q.Where("property_type = ?", propertyType)
	}
	if city != "" {
		q = q.Where("lower(city) = ?", strings.ToLower(city))
	}
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(address) LIKE ? OR lower(district) LIKE ? OR lower(city) LIKE ?", like, like, like, like)
	}
	if createdFrom != "" {
		if t, err := time.Parse(time.RFC3339, createdFrom); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if createdTo != "" {
		if t, err := time.Parse(time.RFC3339, createdTo); err == nil {
			q = q.Where("created_at <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var listings []models.Listing
	if err := q.Preload("Owner").Preload("Prices").Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&listings).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, listings, page, perPage, total)
}

// GET /api/admin/listings/:id?include=owner,prices,photos,amenities
func AdminGetListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	include := strings.Split(strings.TrimSpace(ctx.URLParamDefault("include", "owner,prices,photos,amenities")), ",")

	var listing models.Listing
	q := storage.DB.Model(&models.Listing{})
	for _, inc := range include {
		switch strings.TrimSpace(inc) {
		case "owner":
			q = q.Preload("Owner")
		case "prices":
			q = q.Preload("Prices")
		case "photos":
			q = q.Preload("Photos")
		case "amenities":
			q = q.Preload("Amenities")
		}
	}
	if err := q.First(&listing, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "listing not found")
		return
	}
	ctx.JSON(iris.Map{"data": listing})
}

// POST /api/admin/listings
func AdminCreateListing(ctx iris.Context) {
	var input ListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var owner models.Owner
	if err := storage.DB.First(&owner, input.OwnerID).Error; err != nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_owner", "owner does not exist")
		return
	}

	listing := listingFromInput(input)
	if listing.Status == "" {
		listing.Status = models.ListingStatusActive
	}

	if len(input.AmenityIDs) > 0 {
		amenities, ok := amenitiesByIDs(ctx, input.AmenityIDs)
		if !ok {
			return
		}
		listing.Amenities = amenities
	}

	if err := storage.DB.Create(&listing).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	invalidateFilterCache(ctx)
	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": listing})
}

// PUT /api/admin/listings/:id
func AdminUpdateListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input ListingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var listing models.Listing
	if err := storage.DB.First(&listing, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "listing not found")
		return
	}

	updated := listingFromInput(input)
	updated.Model = listing.Model
	if updated.Status == "" {
		updated.Status = listing.Status
	}

	if err := storage.DB.Omit("Amenities").Save(&updated).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if input.AmenityIDs != nil {
		amenities, ok := amenitiesByIDs(ctx, input.AmenityIDs)
		if !ok {
			return
		}
		if err := storage.DB.Model(&updated).Association("Amenities").Replace(amenities); err != nil {
			utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
			return
		}
	}

	invalidateFilterCache(ctx)
	ctx.JSON(iris.Map{"data": updated})
}

// PATCH /api/admin/listings/:id/status {status}
func AdminUpdateListingStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var body struct {
		Status string `json:"status" validate:"required,oneof=active sold rented reserved inactive"`
	}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var listing models.Listing
	if err := storage.DB.First(&listing, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "listing not found")
		return
	}

	listing.Status = body.Status
	if err := storage.DB.Save(&listing).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	invalidateFilterCache(ctx)
	ctx.JSON(iris.Map{"data": listing})
}

// DELETE /api/admin/listings/:id
func AdminDeleteListing(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var listing models.Listing
	if err := storage.DB.First(&listing, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "listing not found")
		return
	}

	if err := storage.DB.Delete(&listing).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	invalidateFilterCache(ctx)
	ctx.StatusCode(http.StatusNoContent)
}

func listingFromInput(input ListingInput) models.Listing {
	return models.Listing{
		OwnerID:          input.OwnerID,
		Title:            input.Title,
		Description:      input.Description,
		PropertyType:     input.PropertyType,
		Status:           input.Status,
		Address:          input.Address,
		District:         input.District,
		City:             input.City,
		State:            strings.ToUpper(input.State),
		PostalCode:       input.PostalCode,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		UsableArea:       input.UsableArea,
		TotalArea:        input.TotalArea,
		Rooms:            input.Rooms,
		Suites:           input.Suites,
		Bathrooms:        input.Bathrooms,
		ParkingSpaces:    input.ParkingSpaces,
		Floor:            input.Floor,
		ConstructionYear: input.ConstructionYear,
		FurnishedState:   input.FurnishedState,
		PetFriendly:      input.PetFriendly,
		AcceptsFinancing: input.AcceptsFinancing,
		CondoFee:         input.CondoFee,
		PropertyTax:      input.PropertyTax,
	}
}

func amenitiesByIDs(ctx iris.Context, ids []uint) ([]models.AmenityTag, bool) {
	var amenities []models.AmenityTag
	if err := storage.DB.Where("id IN ?", ids).Find(&amenities).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return nil, false
	}
	if len(amenities) != len(ids) {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_amenities", "one or more amenity ids do not exist")
		return nil, false
	}
	return amenities, true
}
