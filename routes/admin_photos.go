package routes

import (
	"net/http"

	"imobiliaria-server/models"
	"imobiliaria-server/storage"
	"imobiliaria-server/utils"

	"github.com/kataras/iris/v12"
)

type PhotoInput struct {
	ImageURL     string `json:"imageURL" validate:"required,url"`
	Caption      string `json:"caption" validate:"max=200"`
	IsCover      bool   `json:"isCover"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
}

type PhotoUpdateInput struct {
	Caption      *string `json:"caption" validate:"omitempty,max=200"`
	IsCover      *bool   `json:"isCover"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,gte=0"`
}

// GET /api/admin/listings/:id/photos
func AdminListListingPhotos(ctx iris.Context) {
	listingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !listingExists(ctx, listingID) {
		return
	}

	var photos []models.Photo
	if err := storage.DB.Where("listing_id = ?", listingID).Order("display_order ASC, id ASC").Find(&photos).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": photos})
}

// POST /api/admin/listings/:id/photos
func AdminAddListingPhoto(ctx iris.Context) {
	listingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	if !listingExists(ctx, listingID) {
		return
	}

	var input PhotoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	photo := models.Photo{
		ListingID:    listingID,
		ImageURL:     input.ImageURL,
		Caption:      input.Caption,
		IsCover:      input.IsCover,
		DisplayOrder: input.DisplayOrder,
	}
	if err := storage.DB.Create(&photo).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": photo})
}

// PATCH /api/admin/photos/:photoID
func AdminUpdateListingPhoto(ctx iris.Context) {
	photoID, err := ctx.Params().GetUint("photoID")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input PhotoUpdateInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var photo models.Photo
	if err := storage.DB.First(&photo, photoID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "photo not found")
		return
	}

	if input.Caption != nil {
		photo.Caption = *input.Caption
	}
	if input.IsCover != nil {
		photo.IsCover = *input.IsCover
	}
	if input.DisplayOrder != nil {
		photo.DisplayOrder = *input.DisplayOrder
	}

	if err := storage.DB.Save(&photo).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": photo})
}

// DELETE /api/admin/photos/:photoID
func AdminDeleteListingPhoto(ctx iris.Context) {
	photoID, err := ctx.Params().GetUint("photoID")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var photo models.Photo
	if err := storage.DB.First(&photo, photoID).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "photo not found")
		return
	}

	if err := storage.DB.Delete(&photo).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}
