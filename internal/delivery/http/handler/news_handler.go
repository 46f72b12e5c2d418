package handler

import (
	"skill-dashboard/internal/delivery/http/middleware"
	"skill-dashboard/internal/pkg/response"
	"skill-dashboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NewsHandler struct {
	uc usecase.NewsUsecase
}

func NewNewsHandler(uc usecase.NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

func (h *NewsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/news", h.List)
}

func (h *NewsHandler) List(c fiber.Ctx) error {
	items, err := h.uc.LatestNews(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageNewsQueryFailed, err)
	}
	return response.JSON(c, fiber.StatusOK, items)
}
