package handler

import (
	"skill-dashboard/internal/delivery/http/middleware"
	"skill-dashboard/internal/pkg/response"
	"skill-dashboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type createSkillRequest struct {
	ToolName string `json:"tool_name"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

type updateSkillRequest struct {
	ToolName string `json:"tool_name"`
	Status   string `json:"status"`
}

type updateSkillResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	ToolName string `json:"tool_name"`
	Status   string `json:"status"`
}

type deleteSkillResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills", h.List)
	r.Post("/skills", h.Create)
	r.Put("/skills/:id", h.Update)
	r.Delete("/skills/:id", h.Delete)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageSkillsQueryFailed, err)
	}
	return response.JSON(c, fiber.StatusOK, items)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	created, err := h.uc.AddSkill(c.Context(), usecase.AddSkillInput{
		ToolName: req.ToolName,
		Category: req.Category,
		Status:   req.Status,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageSkillCreateFailed, err)
	}
	return response.JSON(c, fiber.StatusOK, created)
}

// Update echoes the submitted fields with the path id as given, whether or
// not a row matched.
func (h *SkillHandler) Update(c fiber.Ctx) error {
	id := c.Params("id")

	var req updateSkillRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := h.uc.UpdateSkill(c.Context(), id, usecase.UpdateSkillInput{
		ToolName: req.ToolName,
		Status:   req.Status,
	}); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageSkillUpdateFailed, err)
	}

	return response.JSON(c, fiber.StatusOK, updateSkillResponse{
		Message:  response.MessageUpdated,
		ID:       id,
		ToolName: req.ToolName,
		Status:   req.Status,
	})
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")

	if err := h.uc.DeleteSkill(c.Context(), id); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageSkillDeleteFailed, err)
	}
	return response.JSON(c, fiber.StatusOK, deleteSkillResponse{Message: response.MessageDeleted, ID: id})
}

// bindJSON treats an empty body as an empty object, the way a JSON body
// parser leaves fields unset.
func bindJSON(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	}
	return nil
}
