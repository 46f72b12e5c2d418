package handler

import (
	"skill-dashboard/web"

	"github.com/gofiber/fiber/v3"
)

// DashboardHandler serves the embedded single-page dashboard.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/dashboard", h.Index)
}

func (h *DashboardHandler) Index(c fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.Send(web.Index)
}
