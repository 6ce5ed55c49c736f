package api

import (
	"github.com/JaimeStill/superclaims/internal/config"
	"github.com/JaimeStill/superclaims/internal/infrastructure"
	"github.com/JaimeStill/superclaims/internal/workflow"
)

// Runtime extends Infrastructure with the claim workflow runtime.
type Runtime struct {
	*infrastructure.Infrastructure
	Workflow *workflow.Runtime
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := &infrastructure.Infrastructure{
		Lifecycle:  infra.Lifecycle,
		Logger:     infra.Logger.With("module", "api"),
		Oracle:     infra.Oracle,
		Rasterizer: infra.Rasterizer,
		Prompts:    infra.Prompts,
	}

	return &Runtime{
		Infrastructure: scoped,
		Workflow:       scoped.Workflow(&cfg.Workflow),
	}
}
