package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"skill-dashboard/internal/config"
	"skill-dashboard/internal/database/seeder"
	"skill-dashboard/internal/delivery/http/middleware"
	"skill-dashboard/internal/delivery/http/routes"
	"skill-dashboard/internal/repository"
	"skill-dashboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
}

// Usecases are the only things the HTTP layer depends on.
type Usecases struct {
	Skills usecase.SkillUsecase
	News   usecase.NewsUsecase
	Review usecase.ReviewUsecase
}

func New(cfg config.Config, uc Usecases, logger *log.Logger) *App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, logger)
	routes.NewRegistry(uc.Skills, uc.News, uc.Review).Register(f)

	return &App{Fiber: f}
}

// Bootstrap acquires the process-wide stores, prepares the skills table and
// builds the HTTP app. The returned cleanup releases everything acquired.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := (seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}).Run(seedCtx, c.DB); err != nil {
		logger.Printf("[Postgres] schema bootstrap skipped | err=%v", err)
	}

	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	newsRepo := repository.NewMongoNewsRepository(c.Mongo.Collection(), c.Mongo)

	app := New(cfg, Usecases{
		Skills: usecase.NewSkillUsecase(skillRepo),
		News:   usecase.NewNewsUsecase(newsRepo),
		Review: usecase.NewReviewUsecase(skillRepo, c.Completer),
	}, logger)

	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(cors.New())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
