// Package oracle provides the single request/response operation used to
// consult a vision-capable language model. A request is an ordered list of
// content parts (inline images or literal text); the reply is free-form text
// with no schema enforced by the far side.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Oracle sends an ordered list of content parts to a model and returns its
// text reply.
type Oracle interface {
	Ask(ctx context.Context, parts []Part) (string, error)
}

// PartKind distinguishes inline images from literal text.
type PartKind string

const (
	PartText  PartKind = "text"
	PartImage PartKind = "image"
)

// Part is one element of an oracle request.
type Part struct {
	Kind     PartKind
	Text     string
	Data     []byte
	MIMEType string
}

// Text returns a literal text part.
func Text(s string) Part {
	return Part{Kind: PartText, Text: s}
}

// Image returns an inline image part. An empty mimeType defaults to image/png.
func Image(data []byte, mimeType string) Part {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return Part{Kind: PartImage, Data: data, MIMEType: mimeType}
}

// New constructs the Oracle selected by cfg.Provider. The returned client
// applies cfg's per-call timeout and logs each exchange.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (Oracle, error) {
	var (
		o   Oracle
		err error
	)

	switch cfg.Provider {
	case ProviderAgent:
		o = newAgent(cfg.Agent)
	case ProviderClaude:
		o = newClaude(cfg.Claude)
	case ProviderGemini:
		o, err = newGemini(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("create %s oracle: %w", cfg.Provider, err)
	}

	return WithTimeout(o, cfg.TimeoutDuration(), logger.With("system", "oracle", "provider", cfg.Provider)), nil
}

type timed struct {
	next    Oracle
	timeout time.Duration
	logger  *slog.Logger
	failing atomic.Bool
}

// WithTimeout bounds every Ask on o by timeout. A non-positive timeout
// leaves calls bounded only by the caller's context. The returned Oracle
// also reports Ready: false after a call fails to reach the model, true
// again after the next reply.
func WithTimeout(o Oracle, timeout time.Duration, logger *slog.Logger) Oracle {
	return &timed{next: o, timeout: timeout, logger: logger}
}

// Ready reports whether the most recent call reached the model. It is true
// before the first call.
func (t *timed) Ready() bool {
	return !t.failing.Load()
}

func (t *timed) Ask(ctx context.Context, parts []Part) (string, error) {
	if len(parts) == 0 {
		return "", ErrNoParts
	}

	caller := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := t.next.Ask(ctx, parts)
	if err != nil {
		// The caller giving up says nothing about the model.
		if !errors.Is(caller.Err(), context.Canceled) {
			t.failing.Store(true)
		}
		t.logger.WarnContext(ctx, "oracle call failed",
			"parts", len(parts),
			"duration", time.Since(start),
			"error", err,
		)
		return "", err
	}

	t.failing.Store(false)

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	t.logger.DebugContext(ctx, "oracle call complete",
		"parts", len(parts),
		"response_length", len(text),
		"duration", time.Since(start),
	)

	return text, nil
}

func joinText(parts []Part) string {
	var texts []string
	for _, p := range parts {
		if p.Kind == PartText {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n\n")
}
