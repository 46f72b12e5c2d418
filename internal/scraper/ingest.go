package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skill-dashboard/internal/domain/news"
)

const (
	LockKey = "newsbot:lock"
	LockTTL = 2 * time.Minute
)

var ErrLocked = errors.New("another news bot run holds the lock")

// RunLock is satisfied by cache.Redis.
type RunLock interface {
	Available() bool
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	ReleaseIfValue(ctx context.Context, key string, value string) error
}

type Source interface {
	Scrape(ctx context.Context, pages int, limit int) ([]news.Item, error)
}

type NewsWriter interface {
	ReplaceAll(ctx context.Context, items []news.Item) error
}

// Ingest is one news bot run: lock, scrape, replace the collection.
type Ingest struct {
	Lock   RunLock
	Token  string
	Source Source
	Store  NewsWriter
	Logger *log.Logger
}

// Run returns how many items were stored. A run that scraped nothing
// leaves the collection as it was and reports zero without error.
func (in *Ingest) Run(ctx context.Context, pages int, limit int) (int, error) {
	if in == nil || in.Source == nil || in.Store == nil {
		return 0, fmt.Errorf("ingest not configured")
	}
	logger := in.Logger
	if logger == nil {
		logger = log.Default()
	}

	release, err := in.acquire(ctx, logger)
	if err != nil {
		return 0, err
	}
	defer release()

	items, err := in.Source.Scrape(ctx, pages, limit)
	if err != nil {
		return 0, fmt.Errorf("scrape: %w", err)
	}
	if len(items) == 0 {
		logger.Printf("[NewsBot] nothing scraped, collection left untouched")
		return 0, nil
	}

	if err := in.Store.ReplaceAll(ctx, items); err != nil {
		return 0, fmt.Errorf("replace news: %w", err)
	}
	logger.Printf("[NewsBot] stored | count=%d", len(items))
	return len(items), nil
}

func (in *Ingest) acquire(ctx context.Context, logger *log.Logger) (func(), error) {
	noop := func() {}
	if in.Lock == nil || !in.Lock.Available() {
		logger.Printf("[NewsBot] run lock unavailable, continuing without it")
		return noop, nil
	}

	ok, err := in.Lock.SetIfNotExists(ctx, LockKey, in.Token, LockTTL)
	if err != nil {
		logger.Printf("[NewsBot] run lock error, continuing without it | err=%v", err)
		return noop, nil
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := in.Lock.ReleaseIfValue(relCtx, LockKey, in.Token); err != nil {
			logger.Printf("[NewsBot] run lock release failed | err=%v", err)
		}
	}, nil
}
