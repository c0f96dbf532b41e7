package utils

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/gofiber/fiber/v2"
)

// ResponseError maps any error onto the shared error envelope. Unclassified
// errors come back as 500s.
func ResponseError(ctx *fiber.Ctx, err error) error {
	appErr := apperr.From(err)
	body := fiber.Map{
		"success":     false,
		"error":       appErr.Message,
		"status_code": appErr.Status,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return ctx.Status(appErr.Status).JSON(body)
}

func ResponseSuccess(ctx *fiber.Ctx, status int, message string, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}
