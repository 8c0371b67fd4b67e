package repository

import (
	"context"

	"ai-rss-hub/internal/domain/entity"
)

type FeedRepository interface {
	Get(ctx context.Context, id int64) (*entity.Feed, error)
	GetByURL(ctx context.Context, url string) (*entity.Feed, error)
	List(ctx context.Context) ([]*entity.Feed, error)
	ListActive(ctx context.Context) ([]*entity.Feed, error)
	Create(ctx context.Context, feed *entity.Feed) error
	Update(ctx context.Context, feed *entity.Feed) error
	Delete(ctx context.Context, id int64) error
}
