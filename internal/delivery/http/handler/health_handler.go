package handler

import "github.com/gofiber/fiber/v3"

const LivenessText = "skill-dashboard API is running"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Liveness)
}

func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return c.SendString(LivenessText)
}
