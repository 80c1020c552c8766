package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"imobiliaria-server/models"
	"imobiliaria-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRoutesDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Owner{},
		&models.AmenityTag{},
		&models.Listing{},
		&models.PriceEntry{},
		&models.Photo{},
	))
	require.NoError(t, db.Exec(
		"TRUNCATE listing_amenities, photos, price_entries, listings, amenity_tags, owners RESTART IDENTITY CASCADE",
	).Error)

	storage.DB = db
	return db
}

func buildListingApp() *iris.Application {
	app := iris.New()
	app.Get("/api/listings/{id:uint}", GetListing)
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func TestGetListingDetailWithSimilar(t *testing.T) {
	db := setupRoutesDB(t)

	owner := models.Owner{ExternalID: "route-owner", FullName: "Ana Lima", Email: "ana@example.com", Phone: "+55 11 98888-0000"}
	require.NoError(t, db.Create(&owner).Error)

	seed := func(title, city string) models.Listing {
		l := models.Listing{
			OwnerID:      owner.ID,
			Title:        title,
			PropertyType: models.PropertyTypeApartment,
			Status:       models.ListingStatusActive,
			Address:      "Rua B, 200",
			District:     "Centro",
			City:         city,
			State:        "SP",
		}
		require.NoError(t, db.Create(&l).Error)
		return l
	}

	subject := seed("Subject", "Springfield")
	seed("Neighbor one", "Springfield")
	seed("Neighbor two", "Springfield")
	seed("Elsewhere", "Shelbyville")

	app := buildListingApp()
	req := httptest.NewRequest(http.MethodGet, "/api/listings/"+strconv.FormatUint(uint64(subject.ID), 10), nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data    models.Listing   `json:"data"`
		Similar []models.Listing `json:"similar"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Subject", body.Data.Title)
	assert.Len(t, body.Similar, 2)

	// A failing store must surface as a 500, never as a degraded payload.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	req2 := httptest.NewRequest(http.MethodGet, "/api/listings/"+strconv.FormatUint(uint64(subject.ID), 10), nil)
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	assert.Equal(t, http.StatusInternalServerError, resp2.Code)
}
