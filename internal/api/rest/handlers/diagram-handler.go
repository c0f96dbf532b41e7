package handlers

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DiagramHandler struct {
	svc services.DiagramService
}

func NewDiagramHandler(svc services.DiagramService) *DiagramHandler {
	return &DiagramHandler{svc: svc}
}

func (h *DiagramHandler) SetupRoutes(api fiber.Router) {
	diagrams := api.Group("/diagrams")

	diagrams.Get("/", h.List)
	diagrams.Post("/", h.Create)
	diagrams.Get("/:diagramID", h.Get)
	diagrams.Put("/:diagramID", h.Update)
	diagrams.Delete("/:diagramID", h.Delete)

	diagrams.Get("/:diagramID/links", h.ListLinks)
	diagrams.Post("/:diagramID/links", h.CreateLink)
	diagrams.Delete("/:diagramID/links/:linkID", h.DeleteLink)
}

func (h *DiagramHandler) List(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	diagrams, err := h.svc.ListDiagrams(ctx.UserContext(), profile, queryPtr(ctx, "company_id"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "diagrams listed", diagrams)
}

func (h *DiagramHandler) Get(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	detail, err := h.svc.GetDiagramDetail(ctx.UserContext(), profile, ctx.Params("diagramID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "diagram fetched", detail)
}

func (h *DiagramHandler) Create(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateDiagramRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	diagram, err := h.svc.CreateDiagram(ctx.UserContext(), profile, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "diagram created", diagram)
}

func (h *DiagramHandler) Update(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.UpdateDiagramRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	diagram, err := h.svc.UpdateDiagram(ctx.UserContext(), profile, ctx.Params("diagramID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "diagram updated", diagram)
}

func (h *DiagramHandler) Delete(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteDiagram(ctx.UserContext(), profile, ctx.Params("diagramID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "diagram deleted", nil)
}

func (h *DiagramHandler) ListLinks(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	links, err := h.svc.ListLinks(ctx.UserContext(), profile, ctx.Params("diagramID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "links listed", links)
}

func (h *DiagramHandler) CreateLink(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.EntityLinkRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	link, err := h.svc.CreateLink(ctx.UserContext(), profile, ctx.Params("diagramID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "link created", link)
}

func (h *DiagramHandler) DeleteLink(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteLink(ctx.UserContext(), profile, ctx.Params("diagramID"), ctx.Params("linkID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "link deleted", nil)
}
