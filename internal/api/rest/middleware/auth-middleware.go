package middleware

import (
	"strings"

	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/helper"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/reqctx"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthMiddleware verifies the bearer token, loads the caller's profile and
// stamps the request with a correlation id. Downstream handlers read the
// profile via CurrentProfile.
func AuthMiddleware(auth helper.Auth, userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		profile, err := userSvc.FindByEmail(ctx.UserContext(), claims.Email)
		if err != nil {
			return utils.ResponseError(ctx, err)
		}
		if profile == nil || !profile.Active {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unknown or inactive user",
			})
		}

		requestID := strings.TrimSpace(ctx.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Set("X-Request-ID", requestID)

		reqCtx := reqctx.WithRequestID(ctx.UserContext(), requestID)
		reqCtx = reqctx.WithUserID(reqCtx, profile.ID)
		ctx.SetUserContext(reqCtx)

		ctx.Locals("profile", profile)
		return ctx.Next()
	}
}

// CurrentProfile returns the authenticated caller stored by AuthMiddleware.
func CurrentProfile(ctx *fiber.Ctx) (*domain.UserProfile, bool) {
	profile, ok := ctx.Locals("profile").(*domain.UserProfile)
	return profile, ok && profile != nil
}

func AdminOnly() fiber.Handler {
	return requireRole("admin only", domain.RoleRoot, domain.RoleAdmin)
}

func RootOnly() fiber.Handler {
	return requireRole("root only", domain.RoleRoot)
}

func requireRole(message string, roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		profile, ok := CurrentProfile(ctx)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		for _, role := range roles {
			if profile.Role == role {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": message,
		})
	}
}
