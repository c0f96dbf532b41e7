package handlers

import (
	"github.com/Procesia/docs_service/internal/api/rest/middleware"
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CompanyHandler struct {
	svc services.CompanyService
}

func NewCompanyHandler(svc services.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

func (h *CompanyHandler) SetupRoutes(api fiber.Router) {
	companies := api.Group("/companies")

	companies.Get("/", h.List)
	companies.Post("/", middleware.RootOnly(), h.Create)
	companies.Get("/:companyID", h.Get)
	companies.Put("/:companyID", middleware.AdminOnly(), h.Update)
	companies.Delete("/:companyID", middleware.RootOnly(), h.Delete)
}

func (h *CompanyHandler) List(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	companies, err := h.svc.ListCompanies(ctx.UserContext(), profile)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "companies listed", companies)
}

func (h *CompanyHandler) Get(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	company, err := h.svc.GetCompany(ctx.UserContext(), profile, ctx.Params("companyID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "company fetched", company)
}

func (h *CompanyHandler) Create(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateCompanyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	company, err := h.svc.CreateCompany(ctx.UserContext(), profile, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "company created", company)
}

func (h *CompanyHandler) Update(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.UpdateCompanyRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	company, err := h.svc.UpdateCompany(ctx.UserContext(), profile, ctx.Params("companyID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "company updated", company)
}

func (h *CompanyHandler) Delete(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteCompany(ctx.UserContext(), profile, ctx.Params("companyID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "company deleted", nil)
}
