// Package api assembles the API module with the claim domain and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/superclaims/internal/config"
	"github.com/JaimeStill/superclaims/internal/infrastructure"
	"github.com/JaimeStill/superclaims/pkg/middleware"
	"github.com/JaimeStill/superclaims/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	patterns, err := registerRoutes(mux, domain, cfg)
	if err != nil {
		return nil, err
	}
	runtime.Logger.Debug("routes registered", "prefix", cfg.API.BasePath, "patterns", patterns)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(
		middleware.Recover(runtime.Logger),
		middleware.Logger(runtime.Logger),
		middleware.CORS(&cfg.API.CORS),
	)

	return m, nil
}
