package handlers

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FlowHandler struct {
	svc services.FlowService
}

func NewFlowHandler(svc services.FlowService) *FlowHandler {
	return &FlowHandler{svc: svc}
}

func (h *FlowHandler) SetupRoutes(api fiber.Router) {
	flows := api.Group("/flows")

	flows.Get("/", h.List)
	flows.Post("/", h.Create)
	flows.Get("/:flowID", h.Get)
	flows.Put("/:flowID", h.Update)
	flows.Delete("/:flowID", h.Delete)
	flows.Put("/:flowID/graph", h.SaveGraph)
}

func (h *FlowHandler) List(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	flows, err := h.svc.ListFlows(ctx.UserContext(), profile, queryPtr(ctx, "company_id"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "flows listed", flows)
}

func (h *FlowHandler) Get(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	graph, err := h.svc.GetFlowGraph(ctx.UserContext(), profile, ctx.Params("flowID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "flow fetched", graph)
}

func (h *FlowHandler) Create(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateFlowRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	flow, err := h.svc.CreateFlow(ctx.UserContext(), profile, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "flow created", flow)
}

func (h *FlowHandler) Update(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.UpdateFlowRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	flow, err := h.svc.UpdateFlow(ctx.UserContext(), profile, ctx.Params("flowID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "flow updated", flow)
}

func (h *FlowHandler) Delete(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteFlow(ctx.UserContext(), profile, ctx.Params("flowID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "flow deleted", nil)
}

func (h *FlowHandler) SaveGraph(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.SaveFlowGraphRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	graph, err := h.svc.SaveGraph(ctx.UserContext(), profile, ctx.Params("flowID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "flow graph saved", graph)
}
