package handlers

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	svc services.DocumentService
}

func NewDocumentHandler(svc services.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) SetupRoutes(api fiber.Router) {
	documents := api.Group("/documents")

	documents.Get("/", h.List)
	documents.Post("/", h.Create)
	documents.Get("/:documentID", h.Get)
	documents.Put("/:documentID", h.Update)
	documents.Delete("/:documentID", h.Delete)

	documents.Get("/:documentID/versions", h.ListVersions)
	documents.Post("/:documentID/versions", h.CreateVersion)
	documents.Post("/:documentID/reads", h.RecordRead)
}

func (h *DocumentHandler) List(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	query := dto.DocumentListQuery{
		CompanyID:       queryPtr(ctx, "company_id"),
		ProcessID:       queryPtr(ctx, "process_id"),
		IncludeInactive: ctx.QueryBool("include_inactive"),
	}

	documents, err := h.svc.ListDocuments(ctx.UserContext(), profile, query)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "documents listed", documents)
}

func (h *DocumentHandler) Get(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	detail, err := h.svc.GetDocumentDetail(ctx.UserContext(), profile, ctx.Params("documentID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "document fetched", detail)
}

func (h *DocumentHandler) Create(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateDocumentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	document, err := h.svc.CreateDocument(ctx.UserContext(), profile, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "document created", document)
}

func (h *DocumentHandler) Update(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.UpdateDocumentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	document, err := h.svc.UpdateDocument(ctx.UserContext(), profile, ctx.Params("documentID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "document updated", document)
}

func (h *DocumentHandler) Delete(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteDocument(ctx.UserContext(), profile, ctx.Params("documentID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "document deleted", nil)
}

func (h *DocumentHandler) ListVersions(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	versions, err := h.svc.ListVersions(ctx.UserContext(), profile, ctx.Params("documentID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "versions listed", versions)
}

func (h *DocumentHandler) CreateVersion(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateVersionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	version, err := h.svc.CreateVersion(ctx.UserContext(), profile, ctx.Params("documentID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "version created", version)
}

func (h *DocumentHandler) RecordRead(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.RecordReadRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	read, err := h.svc.RecordRead(ctx.UserContext(), profile, ctx.Params("documentID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "read recorded", read)
}
