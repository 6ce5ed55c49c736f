package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/JaimeStill/superclaims/pkg/render"
	"golang.org/x/sync/errgroup"
)

// RasterizeNode returns a state node that renders every document in the
// claim to page images. Documents render concurrently. A document whose
// bytes cannot be decoded aborts the claim with ErrDecode; any other
// rasterizer failure aborts it unwrapped.
func RasterizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		claim, err := extractClaim(s)
		if err != nil {
			return s, fmt.Errorf("rasterize: %w", err)
		}

		if err := rasterizeDocuments(ctx, rt, claim.Documents); err != nil {
			return s, claim.abortWith(fmt.Errorf("rasterize: %w", err))
		}

		pages := 0
		for _, doc := range claim.Documents {
			pages += doc.PageCount
		}

		rt.Logger.InfoContext(
			ctx, "rasterize node complete",
			"claim_id", claim.ID,
			"document_count", len(claim.Documents),
			"page_count", pages,
		)

		return s.Set(KeyClaim, claim), nil
	})
}

func rasterizeDocuments(ctx context.Context, rt *Runtime, docs []*Document) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.workerCount(len(docs)))

	for i, doc := range docs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			images, err := rt.Rasterizer.Rasterize(gctx, doc.RawBytes)
			if errors.Is(err, render.ErrDecode) {
				return fmt.Errorf("%w: document %d (%s): %w", ErrDecode, i+1, doc.Filename, err)
			}
			if err != nil {
				return fmt.Errorf("rasterize document %d (%s): %w", i+1, doc.Filename, err)
			}

			if images == nil {
				images = [][]byte{}
			}

			doc.PageImages = images
			doc.PageCount = len(images)
			return nil
		})
	}

	return g.Wait()
}
