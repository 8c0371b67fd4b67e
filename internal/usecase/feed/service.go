// Package feed provides feed management use cases for the REST API.
package feed

import (
	"context"
	"fmt"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/repository"
)

// CreateInput represents the input parameters for registering a new feed.
type CreateInput struct {
	Name     string
	URL      string
	Category string
}

// UpdateInput represents the input parameters for updating an existing feed.
// Empty string fields and nil Active field will not be updated.
type UpdateInput struct {
	ID       int64
	Name     string
	URL      string
	Category string
	Active   *bool
}

// Service provides feed management use cases.
// It handles business logic for feed operations and delegates persistence
// to the repository.
type Service struct {
	Repo repository.FeedRepository
}

// List retrieves feeds from the repository. When activeOnly is set, only
// feeds participating in the ingestion cycle are returned.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*entity.Feed, error) {
	var (
		feeds []*entity.Feed
		err   error
	)
	if activeOnly {
		feeds, err = s.Repo.ListActive(ctx)
	} else {
		feeds, err = s.Repo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	return feeds, nil
}

// Create registers a new feed with the provided input.
// It validates the input and rejects URLs that are already registered.
// Returns ErrDuplicateURL when a feed with the same URL exists and a
// ValidationError when any input field is invalid.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Feed, error) {
	f := &entity.Feed{
		Name:     in.Name,
		URL:      in.URL,
		Category: in.Category,
		Active:   true,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByURL(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("check feed URL: %w", err)
	}
	if existing != nil {
		return nil, entity.ErrDuplicateURL
	}

	if err := s.Repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create feed: %w", err)
	}
	return f, nil
}

// Update modifies an existing feed with the provided input.
// Empty string fields and nil Active field will not be updated.
// Returns entity.ErrNotFound if the feed does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	if in.ID <= 0 {
		return &entity.ValidationError{Field: "id", Message: "must be positive"}
	}

	f, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return fmt.Errorf("get feed: %w", err)
	}
	if f == nil {
		return entity.ErrNotFound
	}

	if in.Name != "" {
		f.Name = in.Name
	}
	if in.URL != "" {
		if err := entity.ValidateURL(in.URL); err != nil {
			return fmt.Errorf("validate feed URL: %w", err)
		}
		f.URL = in.URL
	}
	if in.Category != "" {
		f.Category = in.Category
	}
	if in.Active != nil {
		f.Active = *in.Active
	}

	if err := s.Repo.Update(ctx, f); err != nil {
		return fmt.Errorf("update feed: %w", err)
	}
	return nil
}

// Delete removes a feed by its ID.
// Returns a ValidationError if the ID is not positive.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return &entity.ValidationError{Field: "id", Message: "must be positive"}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete feed: %w", err)
	}
	return nil
}
