package handlers

import (
	"github.com/Procesia/docs_service/internal/apperr"
	"github.com/Procesia/docs_service/internal/dto"
	"github.com/Procesia/docs_service/internal/helper/utils"
	"github.com/Procesia/docs_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProcessHandler struct {
	svc services.ProcessService
}

func NewProcessHandler(svc services.ProcessService) *ProcessHandler {
	return &ProcessHandler{svc: svc}
}

func (h *ProcessHandler) SetupRoutes(api fiber.Router) {
	processes := api.Group("/processes")

	processes.Get("/", h.List)
	processes.Post("/", h.Create)
	processes.Get("/:processID", h.Get)
	processes.Put("/:processID", h.Update)
	processes.Delete("/:processID", h.Delete)

	processes.Get("/:processID/tasks", h.ListTasks)
	processes.Post("/:processID/tasks", h.CreateTask)
	processes.Put("/:processID/tasks/:taskID", h.UpdateTask)
	processes.Delete("/:processID/tasks/:taskID", h.DeleteTask)

	processes.Get("/:processID/links", h.ListLinks)
	processes.Post("/:processID/links", h.CreateLink)
	processes.Delete("/:processID/links/:linkID", h.DeleteLink)

	processes.Get("/:processID/tasks/:taskID/links", h.ListTaskLinks)
	processes.Post("/:processID/tasks/:taskID/links", h.CreateTaskLink)
	processes.Delete("/:processID/tasks/:taskID/links/:linkID", h.DeleteTaskLink)
}

func (h *ProcessHandler) List(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	processes, err := h.svc.ListProcesses(ctx.UserContext(), profile, queryPtr(ctx, "company_id"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "processes listed", processes)
}

func (h *ProcessHandler) Get(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	detail, err := h.svc.GetProcessDetail(ctx.UserContext(), profile, ctx.Params("processID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "process fetched", detail)
}

func (h *ProcessHandler) Create(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateProcessRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	process, err := h.svc.CreateProcess(ctx.UserContext(), profile, requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "process created", process)
}

func (h *ProcessHandler) Update(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.UpdateProcessRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	process, err := h.svc.UpdateProcess(ctx.UserContext(), profile, ctx.Params("processID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "process updated", process)
}

func (h *ProcessHandler) Delete(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteProcess(ctx.UserContext(), profile, ctx.Params("processID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "process deleted", nil)
}

func (h *ProcessHandler) ListTasks(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	tasks, err := h.svc.ListTasks(ctx.UserContext(), profile, ctx.Params("processID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "tasks listed", tasks)
}

func (h *ProcessHandler) CreateTask(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.CreateTaskRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}
	if err := validate.Struct(requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation(err.Error()))
	}

	task, err := h.svc.CreateTask(ctx.UserContext(), profile, ctx.Params("processID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "task created", task)
}

func (h *ProcessHandler) UpdateTask(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	var requestBody dto.UpdateTaskRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, apperr.Validation("please provide a valid request body"))
	}

	task, err := h.svc.UpdateTask(ctx.UserContext(), profile, ctx.Params("processID"), ctx.Params("taskID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "task updated", task)
}

func (h *ProcessHandler) DeleteTask(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteTask(ctx.UserContext(), profile, ctx.Params("processID"), ctx.Params("taskID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "task deleted", nil)
}

func (h *ProcessHandler) ListLinks(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	links, err := h.svc.ListLinks(ctx.UserContext(), profile, ctx.Params("processID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "links listed", links)
}

func (h *ProcessHandler) CreateLink(ctx *fiber.Ctx) error {
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

	link, err := h.svc.CreateLink(ctx.UserContext(), profile, ctx.Params("processID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "link created", link)
}

func (h *ProcessHandler) DeleteLink(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteLink(ctx.UserContext(), profile, ctx.Params("processID"), ctx.Params("linkID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "link deleted", nil)
}

func (h *ProcessHandler) ListTaskLinks(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	links, err := h.svc.ListTaskLinks(ctx.UserContext(), profile, ctx.Params("processID"), ctx.Params("taskID"))
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "links listed", links)
}

func (h *ProcessHandler) CreateTaskLink(ctx *fiber.Ctx) error {
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

	link, err := h.svc.CreateTaskLink(ctx.UserContext(), profile, ctx.Params("processID"), ctx.Params("taskID"), requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "link created", link)
}

func (h *ProcessHandler) DeleteTaskLink(ctx *fiber.Ctx) error {
	profile, err := profileOr401(ctx)
	if profile == nil {
		return err
	}

	if err := h.svc.DeleteTaskLink(ctx.UserContext(), profile, ctx.Params("processID"), ctx.Params("taskID"), ctx.Params("linkID")); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "link deleted", nil)
}
