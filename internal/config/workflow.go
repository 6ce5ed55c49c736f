package config

import (
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/JaimeStill/superclaims/internal/prompts"
	"github.com/JaimeStill/superclaims/internal/workflow"
	"github.com/JaimeStill/superclaims/pkg/render"
)

const (
	EnvWorkflowClassifyFailure = "SUPERCLAIMS_WORKFLOW_CLASSIFY_FAILURE"
	EnvWorkflowMaxWorkers      = "SUPERCLAIMS_WORKFLOW_MAX_WORKERS"
)

var renderEnv = &render.Env{
	Format:     "SUPERCLAIMS_RENDER_FORMAT",
	DPI:        "SUPERCLAIMS_RENDER_DPI",
	MaxWorkers: "SUPERCLAIMS_RENDER_MAX_WORKERS",
}

// WorkflowConfig holds claim pipeline settings.
type WorkflowConfig struct {
	ClassifyFailure string        `toml:"classify_failure"`
	MaxWorkers      int           `toml:"max_workers"`
	Render          render.Config `toml:"render"`

	// Instructions replaces the built-in instructions of a stage, keyed by
	// stage name. Blank values are ignored.
	Instructions map[string]string `toml:"instructions"`
}

// InstructionOverrides returns the configured instruction text by stage.
func (c *WorkflowConfig) InstructionOverrides() map[prompts.Stage]string {
	out := make(map[prompts.Stage]string, len(c.Instructions))
	for name, text := range c.Instructions {
		if strings.TrimSpace(text) == "" {
			continue
		}
		out[prompts.Stage(name)] = text
	}
	return out
}

// FailurePolicy returns ClassifyFailure as a workflow.FailurePolicy.
func (c *WorkflowConfig) FailurePolicy() workflow.FailurePolicy {
	p, _ := workflow.ParseFailurePolicy(c.ClassifyFailure)
	return p
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WorkflowConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Render.Finalize(renderEnv); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *WorkflowConfig) Merge(overlay *WorkflowConfig) {
	if overlay.ClassifyFailure != "" {
		c.ClassifyFailure = overlay.ClassifyFailure
	}
	if overlay.MaxWorkers != 0 {
		c.MaxWorkers = overlay.MaxWorkers
	}
	c.Render.Merge(&overlay.Render)
	if len(overlay.Instructions) > 0 {
		if c.Instructions == nil {
			c.Instructions = make(map[string]string, len(overlay.Instructions))
		}
		maps.Copy(c.Instructions, overlay.Instructions)
	}
}

func (c *WorkflowConfig) loadDefaults() {
	if c.ClassifyFailure == "" {
		c.ClassifyFailure = string(workflow.FailContinue)
	}
}

func (c *WorkflowConfig) loadEnv() {
	if v := os.Getenv(EnvWorkflowClassifyFailure); v != "" {
		c.ClassifyFailure = v
	}
	if v := os.Getenv(EnvWorkflowMaxWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxWorkers = n
		}
	}
}

func (c *WorkflowConfig) validate() error {
	if _, err := workflow.ParseFailurePolicy(c.ClassifyFailure); err != nil {
		return err
	}
	if c.MaxWorkers < 0 {
		return fmt.Errorf("invalid max_workers: %d", c.MaxWorkers)
	}
	for name := range c.Instructions {
		if _, err := prompts.ParseStage(name); err != nil {
			return fmt.Errorf("instructions %q: %w (valid: %v)", name, err, prompts.Stages())
		}
	}
	return nil
}
