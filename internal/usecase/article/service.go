// Package article provides article query use cases for the REST API.
package article

import (
	"context"
	"fmt"
	"time"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/repository"
)

// MaxListLimit caps the number of articles one listing request may return.
const MaxListLimit = 200

// ListInput represents the filter parameters for listing articles.
// Date takes priority over the start/end range, which takes priority
// over Days; the filters are mutually exclusive.
type ListInput struct {
	Limit     int
	Category  string
	Days      int
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// Service provides article query use cases.
type Service struct {
	Repo repository.ArticleRepository
}

// List retrieves articles joined with their feed metadata, newest first.
// Returns a ValidationError when the filter parameters are out of range.
func (s *Service) List(ctx context.Context, in ListInput) ([]repository.ArticleWithFeed, error) {
	if in.Limit < 0 || in.Limit > MaxListLimit {
		return nil, &entity.ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", MaxListLimit)}
	}
	if in.Days < 0 {
		return nil, &entity.ValidationError{Field: "days", Message: "cannot be negative"}
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, &entity.ValidationError{Field: "end_date", Message: "cannot be before start_date"}
	}

	articles, err := s.Repo.List(ctx, repository.ArticleFilters{
		Limit:     in.Limit,
		Category:  in.Category,
		Days:      in.Days,
		Date:      in.Date,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}
