package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/JaimeStill/superclaims/internal/oracle"
	"github.com/JaimeStill/superclaims/internal/prompts"
)

// Rasterizer renders a document's bytes to ordered page images. Input that is
// not a readable document fails with render.ErrDecode.
type Rasterizer interface {
	Rasterize(ctx context.Context, data []byte) ([][]byte, error)
}

// FailurePolicy selects what the classify node does after a document's
// classification fails.
type FailurePolicy string

const (
	// FailContinue records the failed classification and continues the claim.
	FailContinue FailurePolicy = "continue"
	// FailAbort records the failed classification and aborts the claim.
	FailAbort FailurePolicy = "abort"
)

// ParseFailurePolicy validates a configured policy name.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(s); p {
	case FailContinue, FailAbort:
		return p, nil
	case "":
		return FailContinue, nil
	default:
		return "", fmt.Errorf("invalid classify failure policy: %q", s)
	}
}

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure.
type Runtime struct {
	Oracle          oracle.Oracle
	Rasterizer      Rasterizer
	Prompts         prompts.System
	Logger          *slog.Logger
	ClassifyFailure FailurePolicy
	MaxWorkers      int
}

func (rt *Runtime) workerCount(n int) int {
	limit := rt.MaxWorkers
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return max(min(limit, n), 1)
}
