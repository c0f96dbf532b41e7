package handlers

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/domain"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// LinkHandler exposes the link graph directly, without a parent entity in the
// route.
type LinkHandler struct {
	svc services.ArtifactLinkService
}

func NewLinkHandler(svc services.ArtifactLinkService) *LinkHandler {
	return &LinkHandler{svc: svc}
}

func (h *LinkHandler) SetupRoutes(api fiber.Router) {
	links := api.Group("/links")

	links.Get("/", h.List)
	links.Post("/", h.Create)
	links.Delete("/:linkID", h.Delete)
}

func (h *LinkHandler) List(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	entityID := ctx.Query("entity_id")
	kind, ok := domain.ParseArtifactKind(ctx.Query("entity_type"))
	if entityID == "" || !ok {
		return utils.ResponseError(ctx, apperr.Validation("entity_id and a valid entity_type are required"))
	}

	links, err := h.svc.ListForEntity(ctx.UserContext(), profile, entityID, kind)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "links listed", links)
}

func (h *LinkHandler) Create(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateLinkRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	link, err := h.svc.CreateLink(ctx.UserContext(), profile, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "link created", link)
}

func (h *LinkHandler) Delete(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteLink(ctx.UserContext(), profile, ctx.Params("linkID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "link deleted", nil)
}
