package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"skill-dashboard/internal/config"
	"skill-dashboard/internal/database/mongo"
	"skill-dashboard/internal/infrastructure/cache"
	"skill-dashboard/internal/repository"
	"skill-dashboard/internal/scraper"

	"github.com/google/uuid"
)

func main() {
	os.Exit(run())
}

func run() int {
	pages := flag.Int("pages", scraper.DefaultPages, "number of Hacker News listing pages to read")
	limit := flag.Int("limit", scraper.DefaultLimit, "number of headlines to keep")
	headless := flag.Bool("headless", false, "render pages with headless Chrome instead of plain HTTP")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Printf("failed to load config: %v", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), scraper.LockTTL)
	defer cancel()

	store, err := mongo.Connect(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Printf("failed to init mongo: %v", err)
		return 1
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = store.Close(closeCtx)
	}()
	if !store.Connected() {
		logger.Printf("[NewsBot] news store unreachable, aborting")
		return 1
	}

	lock := cache.NewRedis(cfg.Redis, logger)
	defer func() {
		_ = lock.Close()
	}()

	ingest := &scraper.Ingest{
		Lock:   lock,
		Token:  uuid.NewString(),
		Source: scraper.NewHackerNewsScraper(logger).WithHeadless(*headless),
		Store:  repository.NewMongoNewsRepository(store.Collection(), store),
		Logger: logger,
	}

	logger.Printf("[NewsBot] scraping | pages=%d limit=%d headless=%t", *pages, *limit, *headless)
	n, err := ingest.Run(ctx, *pages, *limit)
	switch {
	case errors.Is(err, scraper.ErrLocked):
		logger.Printf("[NewsBot] %v, exiting", err)
	case err != nil:
		logger.Printf("[NewsBot] run failed | err=%v", err)
		return 1
	case n == 0:
		logger.Printf("[NewsBot] no headlines this run")
	}
	return 0
}
