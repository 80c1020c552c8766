package routes

import (
	"errors"
	"net/http"

	"imobiliaria-server/models"
	"imobiliaria-server/storage"
	"imobiliaria-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type PriceEntryInput struct {
	Purpose string  `json:"purpose" validate:"required,oneof=sale rental short_stay"`
	Value   float64 `json:"value" validate:"required,gt=0"`

	// Short-stay only; ignored for the other purposes.
	MinStayNights int     `json:"minStayNights" validate:"gte=0"`
	CleaningFee   float64 `json:"cleaningFee" validate:"gte=0"`
	GuestCapacity int     `json:"guestCapacity" validate:"gte=0"`
}

// GET /api/admin/listings/:id/prices
func AdminListListingPrices(ctx iris.Context) {
	listingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !listingExists(ctx, listingID) {
		return
	}

	var prices []models.PriceEntry
	if err := storage.DB.Where("listing_id = ?", listingID).Order("purpose ASC").Find(&prices).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": prices})
}

// POST /api/admin/listings/:id/prices
// One entry per purpose: posting an existing purpose updates it in place.
func AdminUpsertListingPrice(ctx iris.Context) {
	listingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !listingExists(ctx, listingID) {
		return
	}

	var input PriceEntryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Stay fields only carry meaning for short-stay pricing.
	if input.Purpose != models.PurposeShortStay {
		input.MinStayNights = 0
		input.CleaningFee = 0
		input.GuestCapacity = 0
	}

	var price models.PriceEntry
	err = storage.DB.Where("listing_id = ? AND purpose = ?", listingID, input.Purpose).First(&price).Error
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		price = models.PriceEntry{ListingID: listingID, Purpose: input.Purpose}
		created = true
	case err != nil:
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	price.Value = input.Value
	price.MinStayNights = input.MinStayNights
	price.CleaningFee = input.CleaningFee
	price.GuestCapacity = input.GuestCapacity

	if err := storage.DB.Save(&price).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	if created {
		ctx.StatusCode(http.StatusCreated)
	}
	ctx.JSON(iris.Map{"data": price})
}

// DELETE /api/admin/prices/:priceID
func AdminDeleteListingPrice(ctx iris.Context) {
	priceID, err := ctx.Params().GetUint("priceID")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var price models.PriceEntry
	if err := storage.DB.First(&price, priceID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "price entry not found")
		return
	}

	if err := storage.DB.Delete(&price).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}

func listingExists(ctx iris.Context, listingID uint) bool {
	var listing models.Listing
	if err := storage.DB.Select("id").First(&listing, listingID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "listing not found")
		return false
	}
	return true
}
