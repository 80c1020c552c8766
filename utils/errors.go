package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{
		"title":  title,
		"detail": detail,
		"status": statusCode,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(
		iris.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected error occurred.",
		ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(
		iris.StatusNotFound,
		"Not Found",
		"The resource you requested does not exist.",
		ctx)
}

// HandleValidationErrors maps body-binding failures onto a 422 with one entry
// per failing field when the error came from the validator.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]iris.Map, 0, len(errs))
		for _, validationErr := range errs {
			validationErrors = append(validationErrors, iris.Map{
				"field": validationErr.Field(),
				"tag":   validationErr.Tag(),
				"value": validationErr.Param(),
			})
		}

		ctx.StopWithJSON(iris.StatusUnprocessableEntity, iris.Map{
			"title":  "Validation Error",
			"detail": "One or more fields failed validation.",
			"status": iris.StatusUnprocessableEntity,
			"fields": validationErrors,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Invalid Payload", "The request body could not be parsed.", ctx)
}
