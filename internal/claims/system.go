package claims

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/superclaims/internal/workflow"
)

// System defines the public contract for claim processing.
type System interface {
	Handler(maxUploadSize int64) *Handler
	Process(ctx context.Context, uploads []Upload) (*workflow.Claim, error)
}

type system struct {
	rt     *workflow.Runtime
	logger *slog.Logger
}

// New creates a claim System that executes claims with rt.
func New(rt *workflow.Runtime, logger *slog.Logger) System {
	return &system{
		rt:     rt,
		logger: logger.With("system", "claims"),
	}
}

func (s *system) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

// Process builds a claim from uploads and runs it through the workflow.
func (s *system) Process(ctx context.Context, uploads []Upload) (*workflow.Claim, error) {
	claim, err := NewClaim(uploads)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(
		ctx, "processing claim",
		"claim_id", claim.ID,
		"document_count", len(claim.Documents),
	)

	result, err := workflow.Execute(ctx, s.rt, claim)
	if err != nil {
		return nil, fmt.Errorf("claim %s: %w", claim.ID, err)
	}

	s.logger.InfoContext(
		ctx, "claim processed",
		"claim_id", result.ID,
		"decision", *result.Decision,
		"duration", result.CompletedAt.Sub(result.StartedAt),
	)

	return result, nil
}
