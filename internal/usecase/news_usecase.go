package usecase

import (
	"context"
	"fmt"

	"skill-dashboard/internal/domain/news"
	"skill-dashboard/internal/repository"
)

type NewsUsecase interface {
	LatestNews(ctx context.Context) ([]news.Item, error)
}

type News struct {
	repo repository.NewsRepository
}

func NewNewsUsecase(repo repository.NewsRepository) *News {
	return &News{repo: repo}
}

// LatestNews returns an empty feed, not an error, while the document store
// is disconnected.
func (u *News) LatestNews(ctx context.Context) ([]news.Item, error) {
	if u.repo == nil || !u.repo.Connected() {
		return []news.Item{}, nil
	}
	items, err := u.repo.Latest(ctx, news.MaxLatest)
	if err != nil {
		return nil, fmt.Errorf("latest news: %w: %w", ErrInternal, err)
	}
	if len(items) > news.MaxLatest {
		items = items[:news.MaxLatest]
	}
	return items, nil
}
