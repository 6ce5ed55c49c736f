package oracle

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiOracle struct {
	client *genai.Client
	cfg    GeminiConfig
}

func newGemini(ctx context.Context, cfg GeminiConfig) (*geminiOracle, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &geminiOracle{client: client, cfg: cfg}, nil
}

func (o *geminiOracle) Ask(ctx context.Context, parts []Part) (string, error) {
	gparts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case PartImage:
			gparts = append(gparts, genai.NewPartFromBytes(p.Data, p.MIMEType))
		default:
			gparts = append(gparts, genai.NewPartFromText(p.Text))
		}
	}

	contents := []*genai.Content{genai.NewContentFromParts(gparts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{}
	if o.cfg.Temperature > 0 {
		config.Temperature = genai.Ptr(o.cfg.Temperature)
	}

	resp, err := o.client.Models.GenerateContent(ctx, o.cfg.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	return resp.Text(), nil
}
