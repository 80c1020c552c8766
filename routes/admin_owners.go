package routes

import (
	"net/http"
	"strings"

	"imobiliaria-server/models"
	"imobiliaria-server/storage"
	"imobiliaria-server/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

type OwnerInput struct {
	FullName string `json:"fullName" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
}

// GET /api/admin/owners
func AdminListOwners(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}
	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))

	q := storage.DB.Model(&models.Owner{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(full_name) LIKE ? OR lower(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	q.Count(&total)

	var owners []models.Owner
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&owners).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	counts := listingCounts(owners)
	data := make([]iris.Map, 0, len(owners))
	for _, owner := range owners {
		data = append(data, iris.Map{
			"owner":         owner,
			"totalListings": counts[owner.ID],
		})
	}

	utils.JSONPage(ctx, data, page, perPage, total)
}

// GET /api/admin/owners/:id
func AdminGetOwner(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var owner models.Owner
	if err := storage.DB.Preload("Listings").First(&owner, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "owner not found")
		return
	}
	ctx.JSON(iris.Map{"data": owner})
}

// POST /api/admin/owners
func AdminCreateOwner(ctx iris.Context) {
	var input OwnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	owner := models.Owner{
		ExternalID: uuid.NewString(),
		FullName:   input.FullName,
		Email:      strings.ToLower(input.Email),
		Phone:      input.Phone,
	}
	if err := storage.DB.Create(&owner).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"data": owner})
}

// PUT /api/admin/owners/:id
func AdminUpdateOwner(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input OwnerInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var owner models.Owner
	if err := storage.DB.First(&owner, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "owner not found")
		return
	}

	owner.FullName = input.FullName
	owner.Email = strings.ToLower(input.Email)
	owner.Phone = input.Phone
	if err := storage.DB.Save(&owner).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.JSON(iris.Map{"data": owner})
}

// DELETE /api/admin/owners/:id
// An owner with listings cannot be removed; reassign or delete the listings
// first.
func AdminDeleteOwner(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var owner models.Owner
	if err := storage.DB.First(&owner, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "owner not found")
		return
	}

	var listings int64
	storage.DB.Model(&models.Listing{}).Where("owner_id = ?", owner.ID).Count(&listings)
	if listings > 0 {
		utils.JSONError(ctx, http.StatusConflict, "owner_has_listings", "owner still has listings")
		return
	}

	if err := storage.DB.Delete(&owner).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	ctx.StatusCode(http.StatusNoContent)
}

// listingCounts returns the listing count per owner in a single grouped query.
func listingCounts(owners []models.Owner) map[uint]int64 {
	counts := make(map[uint]int64, len(owners))
	if len(owners) == 0 {
		return counts
	}

	ids := make([]uint, 0, len(owners))
	for _, owner := range owners {
		ids = append(ids, owner.ID)
	}

	var rows []struct {
		OwnerID uint
		Total   int64
	}
	storage.DB.Model(&models.Listing{}).
		Select("owner_id, COUNT(*) AS total").
		Where("owner_id IN ?", ids).
		Group("owner_id").
		Scan(&rows)

	for _, row := range rows {
		counts[row.OwnerID] = row.Total
	}
	return counts
}
