package oracle

import (
	"context"
	"fmt"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// agentOracle routes requests through a go-agents Agent. Requests carrying
// images use Vision with PNG page images encoded as data URIs; text-only
// requests use Chat.
type agentOracle struct {
	cfg gaconfig.AgentConfig
}

func newAgent(cfg gaconfig.AgentConfig) *agentOracle {
	return &agentOracle{cfg: cfg}
}

func (o *agentOracle) Ask(ctx context.Context, parts []Part) (string, error) {
	images, err := dataURIs(parts)
	if err != nil {
		return "", err
	}

	a, err := agent.New(&o.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	prompt := joinText(parts)

	if len(images) == 0 {
		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("chat call: %w", err)
		}
		return resp.Content(), nil
	}

	resp, err := a.Vision(ctx, prompt, images)
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}
	return resp.Content(), nil
}

func dataURIs(parts []Part) ([]string, error) {
	var uris []string
	for i, p := range parts {
		if p.Kind != PartImage {
			continue
		}

		uri, err := encoding.EncodeImageDataURI(p.Data, document.PNG)
		if err != nil {
			return nil, fmt.Errorf("part %d: encode image: %w", i, err)
		}
		uris = append(uris, uri)
	}
	return uris, nil
}
