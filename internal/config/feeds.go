package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"ai-rss-hub/internal/domain/entity"
	"ai-rss-hub/internal/repository"
)

// SeedFeed is one feed entry in the seed file.
type SeedFeed struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// feedsFile is the on-disk shape of the seed file.
type feedsFile struct {
	Feeds []SeedFeed `yaml:"feeds"`
}

// LoadFeedsFile parses a YAML feed seed file. Entries missing a name or URL
// are an error; a missing category falls back to the entity default on
// insert.
func LoadFeedsFile(path string) ([]SeedFeed, error) {
	// #nosec G304 -- path comes from FEEDS_FILE, an operator-controlled setting
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var file feedsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file: %w", err)
	}

	for i, f := range file.Feeds {
		if f.Name == "" {
			return nil, fmt.Errorf("feeds[%d]: name is required", i)
		}
		if f.URL == "" {
			return nil, fmt.Errorf("feeds[%d]: url is required", i)
		}
	}

	return file.Feeds, nil
}

// SeedFeeds inserts the given feeds, skipping any whose URL already exists.
// It returns the number of feeds created. Safe to run on every startup.
func SeedFeeds(ctx context.Context, repo repository.FeedRepository, seeds []SeedFeed, logger *slog.Logger) (int, error) {
	created := 0
	for _, seed := range seeds {
		existing, err := repo.GetByURL(ctx, seed.URL)
		if err != nil {
			return created, fmt.Errorf("SeedFeeds: %w", err)
		}
		if existing != nil {
			continue
		}

		feed := &entity.Feed{
			Name:     seed.Name,
			URL:      seed.URL,
			Category: seed.Category,
			Active:   true,
		}
		if feed.Category == "" {
			feed.Category = entity.DefaultCategory
		}
		if err := feed.Validate(); err != nil {
			logger.Warn("skipping invalid seed feed",
				slog.String("name", seed.Name),
				slog.String("url", seed.URL),
				slog.Any("error", err))
			continue
		}
		if err := repo.Create(ctx, feed); err != nil {
			return created, fmt.Errorf("SeedFeeds: %w", err)
		}
		created++
		logger.Info("seeded feed",
			slog.Int64("feed_id", feed.ID),
			slog.String("name", feed.Name),
			slog.String("category", feed.Category))
	}
	return created, nil
}

// SeedFromEnv loads and applies the seed file named by FEEDS_FILE. Unset
// FEEDS_FILE is a no-op so deployments without a seed file start clean.
func SeedFromEnv(ctx context.Context, repo repository.FeedRepository, logger *slog.Logger) error {
	path := os.Getenv("FEEDS_FILE")
	if path == "" {
		return nil
	}

	seeds, err := LoadFeedsFile(path)
	if err != nil {
		return err
	}

	created, err := SeedFeeds(ctx, repo, seeds, logger)
	if err != nil {
		return err
	}

	logger.Info("feed seeding completed",
		slog.String("file", path),
		slog.Int("total", len(seeds)),
		slog.Int("created", created))
	return nil
}
