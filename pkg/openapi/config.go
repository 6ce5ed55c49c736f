package openapi

import (
	"fmt"
	"net/url"
	"os"
)

// Config holds the info block metadata of the generated document. ServerURL,
// when set, is advertised instead of the API base path.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	ServerURL   string `toml:"server_url"`
}

// ConfigEnv maps config fields to environment variable names.
type ConfigEnv struct {
	Title       string
	Description string
	ServerURL   string
}

// Finalize applies defaults and environment overrides, then validates ServerURL.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "SuperClaims API"
	}
	if c.Description == "" {
		c.Description = "Insurance claim processing: document classification, cross-validation, and adjudication."
	}

	if env != nil {
		for _, f := range []struct {
			name   string
			target *string
		}{
			{env.Title, &c.Title},
			{env.Description, &c.Description},
			{env.ServerURL, &c.ServerURL},
		} {
			if f.name == "" {
				continue
			}
			if v := os.Getenv(f.name); v != "" {
				*f.target = v
			}
		}
	}

	if c.ServerURL != "" {
		if _, err := url.Parse(c.ServerURL); err != nil {
			return fmt.Errorf("invalid server_url: %w", err)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if overlay.ServerURL != "" {
		c.ServerURL = overlay.ServerURL
	}
}

// Server returns ServerURL, or fallback when it is unset.
func (c *Config) Server(fallback string) string {
	if c.ServerURL != "" {
		return c.ServerURL
	}
	return fallback
}
