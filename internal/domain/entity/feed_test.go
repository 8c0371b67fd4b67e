package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeed_Validate(t *testing.T) {
	validFeed := func() *Feed {
		return &Feed{
			Name:     "Hacker News",
			URL:      "https://news.ycombinator.com/rss",
			Category: "tech",
			Active:   true,
		}
	}

	t.Run("valid feed passes validation", func(t *testing.T) {
		f := validFeed()
		assert.NoError(t, f.Validate())
	})

	t.Run("empty name fails validation", func(t *testing.T) {
		f := validFeed()
		f.Name = "   "
		err := f.Validate()
		assert.Error(t, err)
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "name", validationErr.Field)
	})

	t.Run("empty category defaults", func(t *testing.T) {
		f := validFeed()
		f.Category = ""
		assert.NoError(t, f.Validate())
		assert.Equal(t, DefaultCategory, f.Category)
	})

	t.Run("explicit category preserved", func(t *testing.T) {
		f := validFeed()
		f.Category = "science"
		assert.NoError(t, f.Validate())
		assert.Equal(t, "science", f.Category)
	})
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https url is valid", "https://example.com/feed.xml", false},
		{"http url is valid", "http://example.com/rss", false},
		{"empty url is invalid", "", true},
		{"ftp scheme is invalid", "ftp://example.com/feed", true},
		{"missing host is invalid", "https:///feed", true},
		{"relative path is invalid", "/feed.xml", true},
		{"overlong url is invalid", "https://example.com/" + strings.Repeat("a", maxURLLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
