package fetcher_test

import (
	"testing"
	"time"

	"ai-rss-hub/internal/infra/fetcher"
)

func TestDefaultConfig(t *testing.T) {
	cfg := fetcher.DefaultConfig()

	if cfg.Enabled {
		t.Error("content fetching should be opt-in")
	}
	if !cfg.DenyPrivateIPs {
		t.Error("private IP blocking should be on by default")
	}
	if cfg.Threshold != 1500 {
		t.Errorf("Threshold = %d, want 1500", cfg.Threshold)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Parallelism != 10 {
		t.Errorf("Parallelism = %d, want 10", cfg.Parallelism)
	}
	if cfg.MaxBodySize != 10*1024*1024 {
		t.Errorf("MaxBodySize = %d, want 10MB", cfg.MaxBodySize)
	}
	if cfg.MaxRedirects != 5 {
		t.Errorf("MaxRedirects = %d, want 5", cfg.MaxRedirects)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestContentFetchConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fetcher.ContentFetchConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*fetcher.ContentFetchConfig) {}},
		{name: "zero threshold means always fetch", mutate: func(c *fetcher.ContentFetchConfig) { c.Threshold = 0 }},
		{name: "negative threshold", mutate: func(c *fetcher.ContentFetchConfig) { c.Threshold = -1 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *fetcher.ContentFetchConfig) { c.Timeout = 0 }, wantErr: true},
		{name: "negative timeout", mutate: func(c *fetcher.ContentFetchConfig) { c.Timeout = -time.Second }, wantErr: true},
		{name: "parallelism at lower bound", mutate: func(c *fetcher.ContentFetchConfig) { c.Parallelism = 1 }},
		{name: "parallelism at upper bound", mutate: func(c *fetcher.ContentFetchConfig) { c.Parallelism = 50 }},
		{name: "zero parallelism", mutate: func(c *fetcher.ContentFetchConfig) { c.Parallelism = 0 }, wantErr: true},
		{name: "parallelism above bound", mutate: func(c *fetcher.ContentFetchConfig) { c.Parallelism = 51 }, wantErr: true},
		{name: "body size at 1KB floor", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxBodySize = 1024 }},
		{name: "body size at 100MB ceiling", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxBodySize = 100 * 1024 * 1024 }},
		{name: "body size below floor", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxBodySize = 500 }, wantErr: true},
		{name: "body size above ceiling", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxBodySize = 200 * 1024 * 1024 }, wantErr: true},
		{name: "zero redirects allowed", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxRedirects = 0 }},
		{name: "redirects at ceiling", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxRedirects = 10 }},
		{name: "negative redirects", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxRedirects = -1 }, wantErr: true},
		{name: "redirects above ceiling", mutate: func(c *fetcher.ContentFetchConfig) { c.MaxRedirects = 11 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fetcher.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}
	if cfg != fetcher.DefaultConfig() {
		t.Errorf("expected defaults with no env set, got %+v", cfg)
	}
}

func TestLoadConfigFromEnv_CustomValues(t *testing.T) {
	t.Setenv("CONTENT_FETCH_ENABLED", "true")
	t.Setenv("CONTENT_FETCH_THRESHOLD", "2000")
	t.Setenv("CONTENT_FETCH_TIMEOUT", "20s")
	t.Setenv("CONTENT_FETCH_PARALLELISM", "15")
	t.Setenv("CONTENT_FETCH_MAX_BODY_SIZE", "20971520")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "3")
	t.Setenv("CONTENT_FETCH_DENY_PRIVATE_IPS", "false")

	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}

	want := fetcher.ContentFetchConfig{
		Enabled:        true,
		Threshold:      2000,
		Timeout:        20 * time.Second,
		Parallelism:    15,
		MaxBodySize:    20 * 1024 * 1024,
		MaxRedirects:   3,
		DenyPrivateIPs: false,
	}
	if cfg != want {
		t.Errorf("LoadConfigFromEnv() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFromEnv_PartialOverride(t *testing.T) {
	t.Setenv("CONTENT_FETCH_THRESHOLD", "3000")
	t.Setenv("CONTENT_FETCH_PARALLELISM", "20")

	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}

	if cfg.Threshold != 3000 {
		t.Errorf("Threshold = %d, want 3000", cfg.Threshold)
	}
	if cfg.Parallelism != 20 {
		t.Errorf("Parallelism = %d, want 20", cfg.Parallelism)
	}

	defaults := fetcher.DefaultConfig()
	if cfg.Timeout != defaults.Timeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Timeout, defaults.Timeout)
	}
	if cfg.MaxBodySize != defaults.MaxBodySize {
		t.Errorf("MaxBodySize = %d, want default %d", cfg.MaxBodySize, defaults.MaxBodySize)
	}
}

func TestLoadConfigFromEnv_UnparseableValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{name: "threshold not a number", envVar: "CONTENT_FETCH_THRESHOLD", value: "abc"},
		{name: "timeout without unit", envVar: "CONTENT_FETCH_TIMEOUT", value: "10"},
		{name: "parallelism not a number", envVar: "CONTENT_FETCH_PARALLELISM", value: "many"},
		{name: "body size not a number", envVar: "CONTENT_FETCH_MAX_BODY_SIZE", value: "huge"},
		{name: "redirects not a number", envVar: "CONTENT_FETCH_MAX_REDIRECTS", value: "few"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if _, err := fetcher.LoadConfigFromEnv(); err == nil {
				t.Errorf("expected error for %s=%q", tt.envVar, tt.value)
			}
		})
	}
}

func TestLoadConfigFromEnv_RejectsInvalidParsedValue(t *testing.T) {
	// Parses fine but fails validation.
	t.Setenv("CONTENT_FETCH_THRESHOLD", "-100")

	if _, err := fetcher.LoadConfigFromEnv(); err == nil {
		t.Error("expected validation error for negative threshold")
	}
}

func TestLoadConfigFromEnv_UnparseableBoolKeepsDefault(t *testing.T) {
	t.Setenv("CONTENT_FETCH_ENABLED", "yes please")

	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() error = %v", err)
	}
	if cfg.Enabled {
		t.Error("unparseable bool should keep the disabled default")
	}
}
