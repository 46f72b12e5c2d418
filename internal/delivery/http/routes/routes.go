package routes

import (
	"skill-dashboard/internal/delivery/http/handler"
	"skill-dashboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health    *handler.HealthHandler
	dashboard *handler.DashboardHandler
	skills    *handler.SkillHandler
	news      *handler.NewsHandler
	review    *handler.ReviewHandler
}

func NewRegistry(skills usecase.SkillUsecase, news usecase.NewsUsecase, review usecase.ReviewUsecase) *Registry {
	return &Registry{
		health:    handler.NewHealthHandler(),
		dashboard: handler.NewDashboardHandler(),
		skills:    handler.NewSkillHandler(skills),
		news:      handler.NewNewsHandler(news),
		review:    handler.NewReviewHandler(review),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.dashboard.RegisterRoutes(app)
	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	r.skills.RegisterRoutes(api)
	r.news.RegisterRoutes(api)
	r.review.RegisterRoutes(api)
}
