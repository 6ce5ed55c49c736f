package workflow

import (
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

func extractClaim(s state.State) (*Claim, error) {
	val, ok := s.Get(KeyClaim)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrMissingState, KeyClaim)
	}

	claim, ok := val.(*Claim)
	if !ok || claim == nil {
		return nil, fmt.Errorf("%w: %s is not *Claim", ErrMissingState, KeyClaim)
	}

	return claim, nil
}
