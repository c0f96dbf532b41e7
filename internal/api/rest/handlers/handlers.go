package handlers

import (
	"github.com/Procesia/docs_service/internal/api/rest/middleware"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// profileOr401 fetches the authenticated caller or writes a 401.
func profileOr401(ctx *fiber.Ctx) (*domain.UserProfile, error) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		return nil, ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "unauthorized",
		})
	}
	return profile, nil
}

// queryPtr reads an optional query parameter as a pointer.
func queryPtr(ctx *fiber.Ctx, key string) *string {
	value := ctx.Query(key)
	if value == "" {
		return nil
	}
	return &value
}
