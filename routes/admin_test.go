package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"imobiliaria-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// buildTestApp wires the real verifier and role middleware in front of a stub
// handler, so the RBAC chain is exercised without a database.
func buildTestApp() *iris.Application {
	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	app := iris.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} { return new(utils.AccessToken) })

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/ping", func(ctx iris.Context) {
			ctx.JSON(iris.Map{"status": "ok", "userID": ctx.Values().Get("userID")})
		})
		admin.Get("/super-ping", utils.SuperAdminOnlyMiddleware, func(ctx iris.Context) {
			ctx.JSON(iris.Map{"status": "ok"})
		})
	}
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func signTestToken(role string) string {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 0)
	token, _ := signer.Sign(utils.AccessToken{ID: 1, Role: role})
	return string(token)
}

func TestAdminRoutesRBAC(t *testing.T) {
	app := buildTestApp()

	// No token
	req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code == http.StatusOK {
		t.Fatalf("expected non-200 without token, got %d", resp.Code)
	}

	// Non-admin role
	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("user"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", resp2.Code)
	}

	// Admin role
	req3 := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req3.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	resp3 := httptest.NewRecorder()
	app.ServeHTTP(resp3, req3)
	if resp3.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", resp3.Code)
	}

	// Super admin role
	req4 := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
	req4.Header.Set("Authorization", "Bearer "+signTestToken("super_admin"))
	resp4 := httptest.NewRecorder()
	app.ServeHTTP(resp4, req4)
	if resp4.Code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin role, got %d", resp4.Code)
	}
}

func TestSuperAdminRoutesRBAC(t *testing.T) {
	app := buildTestApp()

	// A plain admin is not enough for account management.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/super-ping", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken("admin"))
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin role, got %d", resp.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/admin/super-ping", nil)
	req2.Header.Set("Authorization", "Bearer "+signTestToken("super_admin"))
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin role, got %d", resp2.Code)
	}
}
