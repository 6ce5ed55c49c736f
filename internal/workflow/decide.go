package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Decide maps a validation verdict to a terminal decision.
// A nil verdict is the only path to manual review. An invalid verdict that
// lists no issues resolves to approved.
func Decide(v *Validation) Decision {
	switch {
	case v == nil:
		return DecisionManualReview
	case v.Valid:
		return DecisionApproved
	case len(v.Issues) == 0:
		return DecisionApproved
	default:
		return DecisionRejected
	}
}

// DecideNode returns a state node that sets the claim's decision and
// completion time.
func DecideNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		claim, err := extractClaim(s)
		if err != nil {
			return s, fmt.Errorf("decide: %w", err)
		}

		decision := Decide(claim.Validation)
		completed := time.Now()

		claim.Decision = &decision
		claim.CompletedAt = &completed

		rt.Logger.InfoContext(
			ctx, "decide node complete",
			"claim_id", claim.ID,
			"decision", decision,
		)

		return s.Set(KeyClaim, claim), nil
	})
}
