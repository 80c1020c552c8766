package main

import (
	"fmt"
	"log"
	"os"

	"imobiliaria-server/routes"
	"imobiliaria-server/storage"
	"imobiliaria-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/login", routes.Login)
	}

	listings := app.Party("/api/listings")
	{
		listings.Get("/search", routes.SearchListings)
		listings.Get("/featured", routes.GetFeaturedListings)
		listings.Get("/filters", routes.GetSearchFilters)
		listings.Get("/{id:uint}", routes.GetListing)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/listings", routes.AdminListListings)
		admin.Post("/listings", routes.AdminCreateListing)
		admin.Get("/listings/{id:uint}", routes.AdminGetListing)
		admin.Put("/listings/{id:uint}", routes.AdminUpdateListing)
		admin.Patch("/listings/{id:uint}/status", routes.AdminUpdateListingStatus)
		admin.Delete("/listings/{id:uint}", routes.AdminDeleteListing)

		admin.Get("/listings/{id:uint}/prices", routes.AdminListListingPrices)
		admin.Post("/listings/{id:uint}/prices", routes.AdminUpsertListingPrice)
		admin.Delete("/prices/{priceID:uint}", routes.AdminDeleteListingPrice)

		admin.Get("/listings/{id:uint}/photos", routes.AdminListListingPhotos)
		admin.Post("/listings/{id:uint}/photos", routes.AdminAddListingPhoto)
		admin.Patch("/photos/{photoID:uint}", routes.AdminUpdateListingPhoto)
		admin.Delete("/photos/{photoID:uint}", routes.AdminDeleteListingPhoto)

		admin.Get("/owners", routes.AdminListOwners)
		admin.Post("/owners", routes.AdminCreateOwner)
		admin.Get("/owners/{id:uint}", routes.AdminGetOwner)
		admin.Put("/owners/{id:uint}", routes.AdminUpdateOwner)
		admin.Delete("/owners/{id:uint}", routes.AdminDeleteOwner)

		admin.Get("/users", routes.AdminListUsers)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)

		admin.Get("/amenities", routes.AdminListAmenities)
		admin.Post("/amenities", routes.AdminCreateAmenity)
		admin.Put("/amenities/{id:uint}", routes.AdminUpdateAmenity)
		admin.Delete("/amenities/{id:uint}", routes.AdminDeleteAmenity)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
