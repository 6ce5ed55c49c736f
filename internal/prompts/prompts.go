// Package prompts holds the fixed natural-language prompts sent to the
// oracle. The per-type field schemas in the classification spec are the
// canonical shape of extracted document data.
package prompts

import (
	"context"
	"strings"
)

// System supplies the instructions and response spec for a stage.
type System interface {
	Instructions(ctx context.Context, stage Stage) (string, error)
	Spec(ctx context.Context, stage Stage) (string, error)
}

type defaults struct{}

// Default returns the System backed by the built-in prompts.
func Default() System {
	return defaults{}
}

func (defaults) Instructions(_ context.Context, stage Stage) (string, error) {
	return Instructions(stage)
}

func (defaults) Spec(_ context.Context, stage Stage) (string, error) {
	return Spec(stage)
}

// Compose joins the instructions and spec for a stage into a single prompt.
func Compose(ctx context.Context, ps System, stage Stage) (string, error) {
	instr, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", err
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(instr)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	return sb.String(), nil
}
