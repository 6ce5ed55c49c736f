package oracle

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type claudeOracle struct {
	client anthropic.Client
	cfg    ClaudeConfig
}

func newClaude(cfg ClaudeConfig) *claudeOracle {
	return &claudeOracle{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		cfg:    cfg,
	}
}

func (o *claudeOracle) Ask(ctx context.Context, parts []Part) (string, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(parts))
	for _, p := range parts {
		switch p.Kind {
		case PartImage:
			blocks = append(blocks, anthropic.NewImageBlockBase64(
				p.MIMEType,
				base64.StdEncoding.EncodeToString(p.Data),
			))
		default:
			blocks = append(blocks, anthropic.NewTextBlock(p.Text))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(o.cfg.Model),
		MaxTokens: int64(o.cfg.MaxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if o.cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(o.cfg.Temperature)
	}

	resp, err := o.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude messages call: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return sb.String(), nil
}
