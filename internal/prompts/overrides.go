package prompts

import (
	"context"
	"maps"
)

type overrides struct {
	base         System
	instructions map[Stage]string
}

// WithOverrides returns a System that answers Instructions from the given
// per-stage text and defers to base for everything else. Specs are never
// overridden so the response shape stays fixed.
func WithOverrides(base System, instructions map[Stage]string) System {
	if len(instructions) == 0 {
		return base
	}
	return overrides{base: base, instructions: maps.Clone(instructions)}
}

func (o overrides) Instructions(ctx context.Context, stage Stage) (string, error) {
	if text, ok := o.instructions[stage]; ok {
		return text, nil
	}
	return o.base.Instructions(ctx, stage)
}

func (o overrides) Spec(ctx context.Context, stage Stage) (string, error) {
	return o.base.Spec(ctx, stage)
}
