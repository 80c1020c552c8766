package routes

import (
	"net/http"
	"strings"

	"imobiliaria-server/models"
	"imobiliaria-server/storage"
	"imobiliaria-server/utils"

	"github.com/kataras/iris/v12"
)

type AmenityInput struct {
	Name string `json:"name" validate:"required,max=80"`
	Icon string `json:"icon" validate:"max=80"`
}

// GET /api/admin/amenities
func AdminListAmenities(ctx iris.Context) {
	var amenities []models.AmenityTag
	if err := storage.DB.Order("name ASC").Find(&amenities).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	counts := amenityListingCounts(amenities)
	data := make([]iris.Map, 0, len(amenities))
	for _, amenity := range amenities {
		data = append(data, iris.Map{
			"amenity":       amenity,
			"totalListings": counts[amenity.ID],
		})
	}
	ctx.JSON(iris.Map{"data": data})
}

// POST /api/admin/amenities
func AdminCreateAmenity(ctx iris.Context) {
	var input AmenityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenity := models.AmenityTag{
		Name: strings.TrimSpace(input.Name),
		Icon: input.Icon,
	}
	if err := storage.DB.Create(&amenity).Error; err != nil {
		utils.JSONError(ctx, http.StatusConflict, "amenity_exists", "an amenity with this name already exists")
		return
	}

	invalidateFilterCache(ctx)
	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": amenity})
}

// PUT /api/admin/amenities/:id
func AdminUpdateAmenity(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input AmenityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var amenity models.AmenityTag
	if err := storage.DB.First(&amenity, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "amenity not found")
		return
	}

	amenity.Name = strings.TrimSpace(input.Name)
	amenity.Icon = input.Icon
	if err := storage.DB.Save(&amenity).Error; err != nil {
		utils.JSONError(ctx, http.StatusConflict, "amenity_exists", "an amenity with this name already exists")
		return
	}

	invalidateFilterCache(ctx)
	ctx.JSON(iris.Map{"data": amenity})
}

// DELETE /api/admin/amenities/:id
// Removing a tag detaches it from every listing that carried it.
func AdminDeleteAmenity(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var amenity models.AmenityTag
	if err := storage.DB.First(&amenity, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "amenity not found")
		return
	}

	// The join table has no soft delete, clear it by hand before the tag goes.
	if err := storage.DB.Exec("DELETE FROM listing_amenities WHERE amenity_tag_id = ?", amenity.ID).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	if err := storage.DB.Delete(&amenity).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	invalidateFilterCache(ctx)
	ctx.StatusCode(http.StatusNoContent)
}

func amenityListingCounts(amenities []models.AmenityTag) map[uint]int64 {
	counts := make(map[uint]int64, len(amenities))
	if len(amenities) == 0 {
		return counts
	}

	ids := make([]uint, 0, len(amenities))
	for _, amenity := range amenities {
		ids = append(ids, amenity.ID)
	}

	var rows []struct {
		AmenityTagID uint
		Total        int64
	}
	storage.DB.Table("listing_amenities").
		Select("amenity_tag_id, COUNT(*) AS total").
		Where("amenity_tag_id IN ?", ids).
		Group("amenity_tag_id").
		Scan(&rows)

	for _, row := range rows {
		counts[row.AmenityTagID] = row.Total
	}
	return counts
}
