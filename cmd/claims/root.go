package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/superclaims/internal/config"
	"github.com/JaimeStill/superclaims/internal/infrastructure"
	"github.com/JaimeStill/superclaims/internal/workflow"
)

// app carries state shared by subcommands. newRuntime is replaceable so
// commands can run against stub collaborators.
type app struct {
	configPath string
	newRuntime func(cfg *config.Config) (*workflow.Runtime, error)
}

func newApp() *app {
	return &app{
		configPath: config.BaseConfigFile,
		newRuntime: infrastructureRuntime,
	}
}

func infrastructureRuntime(cfg *config.Config) (*workflow.Runtime, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}
	return infra.Workflow(&cfg.Workflow), nil
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "claims",
		Short:         "Process insurance claim documents",
		Long:          `Classify claim documents with a vision model, cross-validate the extracted fields, and decide the claim.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", a.configPath, "Configuration file path")

	root.AddCommand(newProcessCmd(a))
	root.AddCommand(newVersionCmd(a))

	return root
}
