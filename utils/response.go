package utils

import (
	"github.com/kataras/iris/v12"
)

// PageMeta describes one page of an admin collection. Field names match the
// public search envelope so dashboard pagination code works against both.
type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	totalPages := 0
	if total > 0 && perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	ctx.JSON(iris.Map{
		"data": data,
		"meta": PageMeta{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StopWithJSON(status, iris.Map{"error": code, "message": message})
}
