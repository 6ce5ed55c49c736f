package render

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds page rendering parameters.
type Config struct {
	Format     string `toml:"format"`
	DPI        int    `toml:"dpi"`
	MaxWorkers int    `toml:"max_workers"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Format     string
	DPI        string
	MaxWorkers string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.DPI != 0 {
		c.DPI = overlay.DPI
	}
	if overlay.MaxWorkers != 0 {
		c.MaxWorkers = overlay.MaxWorkers
	}
}

func (c *Config) loadDefaults() {
	if c.Format == "" {
		c.Format = "png"
	}
	if c.DPI == 0 {
		c.DPI = 150
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Format != "" {
		if v := os.Getenv(env.Format); v != "" {
			c.Format = v
		}
	}
	if env.DPI != "" {
		if v := os.Getenv(env.DPI); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.DPI = n
			}
		}
	}
	if env.MaxWorkers != "" {
		if v := os.Getenv(env.MaxWorkers); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxWorkers = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Format != "png" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if c.DPI < 36 || c.DPI > 600 {
		return fmt.Errorf("invalid dpi: %d", c.DPI)
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("invalid max_workers: %d", c.MaxWorkers)
	}
	return nil
}
