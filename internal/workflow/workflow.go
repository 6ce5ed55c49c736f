package workflow

import (
	"context"
	"fmt"
	"time"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the claim pipeline once over claim, mutating it in place:
// rasterize → classify → validate → decide. Each node runs exactly once.
// On failure the error of the node that stopped the run is returned and the
// claim is left without a decision.
func Execute(ctx context.Context, rt *Runtime, claim *Claim) (*Claim, error) {
	if claim == nil || len(claim.Documents) == 0 {
		return nil, fmt.Errorf("%w: claim has no documents", ErrMissingState)
	}

	if claim.StartedAt.IsZero() {
		claim.StartedAt = time.Now()
	}

	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyClaim, claim)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		if claim.abort != nil {
			return nil, claim.abort
		}
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractClaim(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("superclaims-claim")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		node state.StateNode
	}{
		{"rasterize", RasterizeNode(rt)},
		{"classify", ClassifyNode(rt)},
		{"validate", ValidateNode(rt)},
		{"decide", DecideNode(rt)},
	}

	for _, n := range nodes {
		if err := graph.AddNode(n.name, n.node); err != nil {
			return nil, err
		}
	}

	for i := 1; i < len(nodes); i++ {
		if err := graph.AddEdge(nodes[i-1].name, nodes[i].name, nil); err != nil {
			return nil, err
		}
	}

	if err := graph.SetEntryPoint(nodes[0].name); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint(nodes[len(nodes)-1].name); err != nil {
		return nil, err
	}

	return graph, nil
}
