package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/superclaims/internal/claims"
)

func newProcessCmd(a *app) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "process <file>...",
		Short: "Run the claim pipeline over local files",
		Long:  `Read each file as one claim document, reject duplicate content, run rasterize, classify, cross-validate and decide, then print the claim as JSON.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			rt, err := a.newRuntime(cfg)
			if err != nil {
				return fmt.Errorf("init runtime: %w", err)
			}

			uploads, err := readUploads(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			claim, err := claims.New(rt, rt.Logger).Process(ctx, uploads)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(claim)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Print single-line JSON")

	return cmd
}

func readUploads(paths []string) ([]claims.Upload, error) {
	uploads := make([]claims.Upload, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		uploads = append(uploads, claims.Upload{
			Filename: filepath.Base(path),
			Data:     data,
		})
	}
	return uploads, nil
}
