package handlers

import (
	"github.com/Procesia/docs_service/internal/api/rest/middleware"
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) SetupRoutes(api fiber.Router) {
	users := api.Group("/users")

	users.Get("/me", h.Me)
	users.Get("/", middleware.AdminOnly(), h.List)
	users.Post("/", middleware.AdminOnly(), h.Create)
	users.Get("/:userID", h.Get)
	users.Put("/:userID", h.Update)
	users.Delete("/:userID", middleware.AdminOnly(), h.Delete)
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "profile fetched", profile)
}

func (h *UserHandler) List(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	users, err := h.svc.ListUsers(ctx.UserContext(), profile, queryPtr(ctx, "company_id"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "users listed", users)
}

func (h *UserHandler) Get(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	user, err := h.svc.GetUser(ctx.UserContext(), profile, ctx.Params("userID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "user fetched", user)
}

func (h *UserHandler) Create(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	user, err := h.svc.CreateUser(ctx.UserContext(), profile, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "user created", user)
}

func (h *UserHandler) Update(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.UpdateUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	user, err := h.svc.UpdateUser(ctx.UserContext(), profile, ctx.Params("userID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "user updated", user)
}

func (h *UserHandler) Delete(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteUser(ctx.UserContext(), profile, ctx.Params("userID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "user deleted", nil)
}
