// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Feed and Article, along with
// their validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
)

// DefaultCategory is assigned to feeds registered without an explicit category.
const DefaultCategory = "tech"

// Feed represents a subscribed RSS/Atom feed source.
// The ingestion pipeline only reads feeds; they are created and toggled
// through the management API.
type Feed struct {
	ID        int64
	Name      string
	URL       string
	Category  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the Feed entity fields and applies defaults.
func (f *Feed) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if err := ValidateURL(f.URL); err != nil {
		return err
	}
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	return nil
}
