package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResponseApp() *iris.Application {
	app := iris.New()
	app.Get("/page", func(ctx iris.Context) {
		JSONPage(ctx, []string{"a", "b"}, 2, 25, 51)
	})
	app.Get("/empty", func(ctx iris.Context) {
		JSONPage(ctx, []string{}, 1, 25, 0)
	})
	app.Get("/error", func(ctx iris.Context) {
		JSONError(ctx, http.StatusConflict, "owner_has_listings", "owner still has listings")
	})
	if err := app.Build(); err != nil {
		panic(err)
	}
	return app
}

func TestJSONPage(t *testing.T) {
	app := buildResponseApp()

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data []string `json:"data"`
		Meta PageMeta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{"a", "b"}, body.Data)
	assert.Equal(t, PageMeta{Page: 2, PerPage: 25, Total: 51, TotalPages: 3}, body.Meta)

	req2 := httptest.NewRequest(http.MethodGet, "/empty", nil)
	resp2 := httptest.NewRecorder()
	app.ServeHTTP(resp2, req2)
	require.NoError(t, json.Unmarshal(resp2.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Meta.TotalPages)
}

func TestJSONError(t *testing.T) {
	app := buildResponseApp()

	req := httptest.NewRequest(http.MethodGet, "/error", nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusConflict, resp.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "owner_has_listings", body["error"])
	assert.Equal(t, "owner still has listings", body["message"])
}
