package handler

import (
	"skill-dashboard/internal/delivery/http/middleware"
	"skill-dashboard/internal/pkg/response"
	"skill-dashboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

type reviewResponse struct {
	Review string `json:"review"`
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/ai-review", h.Review)
}

func (h *ReviewHandler) Review(c fiber.Ctx) error {
	text, err := h.uc.Review(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageReviewFailed, err)
	}
	return response.JSON(c, fiber.StatusOK, reviewResponse{Review: text})
}
