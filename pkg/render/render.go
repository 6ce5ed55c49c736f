// Package render converts paginated documents into ordered page images.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/image"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"
)

// ErrDecode indicates the input bytes are not a renderable PDF.
var ErrDecode = errors.New("document cannot be decoded")

const sourcePDF = "source.pdf"

// Rasterizer renders PDF bytes to one image per page using ImageMagick.
type Rasterizer struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Rasterizer from a finalized Config.
func New(cfg *Config, logger *slog.Logger) *Rasterizer {
	return &Rasterizer{
		cfg:    *cfg,
		logger: logger.With("system", "render"),
	}
}

// Rasterize returns the rendered page images of data in page order.
// A document with zero pages yields an empty, non-nil slice. Input that is
// not a readable PDF fails with ErrDecode.
func (r *Rasterizer) Rasterize(ctx context.Context, data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if count == 0 {
		return [][]byte{}, nil
	}

	tempDir, err := os.MkdirTemp("", "superclaims-render-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, sourcePDF)
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	images, err := r.renderPages(ctx, pdfPath)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "document rasterized", "page_count", len(images))
	return images, nil
}

func (r *Rasterizer) renderPages(ctx context.Context, pdfPath string) ([][]byte, error) {
	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", ErrDecode, err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(r.imageConfig())
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	pages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("%w: extract pages: %w", ErrDecode, err)
	}

	images := make([][]byte, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workerCount(len(pages)))

	for i, page := range pages {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			data, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", i+1, err)
			}

			images[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return images, nil
}

func (r *Rasterizer) imageConfig() config.ImageConfig {
	cfg := config.DefaultImageConfig()
	cfg.Format = r.cfg.Format
	cfg.DPI = r.cfg.DPI
	return cfg
}

func (r *Rasterizer) workerCount(pageCount int) int {
	limit := r.cfg.MaxWorkers
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return max(min(limit, pageCount), 1)
}

// Ready reports whether an ImageMagick executable is on PATH.
func (r *Rasterizer) Ready() bool {
	for _, bin := range []string{"magick", "convert"} {
		if _, err := exec.LookPath(bin); err == nil {
			return true
		}
	}
	return false
}
