// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (logging, oracle client, page rasterizer) that
// the claim workflow requires.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/superclaims/internal/config"
	"github.com/JaimeStill/superclaims/internal/oracle"
	"github.com/JaimeStill/superclaims/internal/prompts"
	"github.com/JaimeStill/superclaims/internal/workflow"
	"github.com/JaimeStill/superclaims/pkg/lifecycle"
	"github.com/JaimeStill/superclaims/pkg/render"
)

// Infrastructure holds the core systems required by all domain modules.
// The oracle client is constructed once here and shared by every claim run.
type Infrastructure struct {
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Oracle     oracle.Oracle
	Rasterizer *render.Rasterizer
	Prompts    prompts.System
}

// NewLogger creates the root text logger at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := NewLogger(os.Stderr, cfg.Level())

	o, err := oracle.New(lc.Context(), &cfg.Oracle, logger)
	if err != nil {
		return nil, fmt.Errorf("oracle init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle:  lc,
		Logger:     logger,
		Oracle:     o,
		Rasterizer: render.New(&cfg.Workflow.Render, logger),
		Prompts:    prompts.WithOverrides(prompts.Default(), cfg.Workflow.InstructionOverrides()),
	}, nil
}

// Start registers infrastructure readiness checks with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	i.Lifecycle.AddCheck("rasterizer", i.Rasterizer)
	if check, ok := i.Oracle.(lifecycle.ReadinessChecker); ok {
		i.Lifecycle.AddCheck("oracle", check)
	}

	i.Lifecycle.OnStartup(func() {
		if !i.Rasterizer.Ready() {
			i.Logger.Warn("imagemagick not found on PATH, claims cannot be rasterized")
		}
	})

	return nil
}

// Workflow builds the claim workflow runtime from the infrastructure and the
// workflow configuration.
func (i *Infrastructure) Workflow(cfg *config.WorkflowConfig) *workflow.Runtime {
	return &workflow.Runtime{
		Oracle:          i.Oracle,
		Rasterizer:      i.Rasterizer,
		Prompts:         i.Prompts,
		Logger:          i.Logger.With("system", "workflow"),
		ClassifyFailure: cfg.FailurePolicy(),
		MaxWorkers:      cfg.MaxWorkers,
	}
}
