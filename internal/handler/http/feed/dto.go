// Package feed provides HTTP handlers for feed management endpoints.
package feed

import (
	"time"

	"ai-rss-hub/internal/domain/entity"
)

// DTO is the JSON representation of a feed.
type DTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(f *entity.Feed) DTO {
	return DTO{
		ID:        f.ID,
		Name:      f.Name,
		URL:       f.URL,
		Category:  f.Category,
		Active:    f.Active,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
