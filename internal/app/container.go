package app

import (
	"context"
	"errors"
	"log"
	"time"

	"skill-dashboard/internal/config"
	"skill-dashboard/internal/database"
	"skill-dashboard/internal/database/mongo"
	dbpostgres "skill-dashboard/internal/database/postgres"
	"skill-dashboard/internal/infrastructure/completion"
)

// Container holds the resources acquired once at boot and released at
// shutdown.
type Container struct {
	Config    config.Config
	DB        database.DB
	Mongo     *mongo.Client
	Completer completion.Completer
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	mc, err := mongo.Connect(ctx, cfg.Mongo, logger)
	if err != nil {
		// A nil client reads as permanently disconnected.
		logger.Printf("[Mongo] connect failed | err=%v", err)
	}

	return &Container{
		Config:    cfg,
		DB:        db,
		Mongo:     mc,
		Completer: completion.New(cfg.Completion),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if c.Mongo != nil {
		errs = append(errs, c.Mongo.Close(ctx))
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
