package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/superclaims/internal/oracle"
	"github.com/JaimeStill/superclaims/internal/prompts"
	"github.com/JaimeStill/superclaims/pkg/formatting"
)

// ClassifyNode returns a state node that classifies each document with pages
// in a single oracle exchange carrying every page image followed by the
// classification prompt. Documents without pages are skipped and keep a nil
// Classification. A document whose exchange fails is marked with
// FailedClassification; under FailAbort the claim then stops with
// ErrClassificationParse.
func ClassifyNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		claim, err := extractClaim(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		if err := classifyDocuments(ctx, rt, claim); err != nil {
			return s, claim.abortWith(fmt.Errorf("classify: %w", err))
		}

		var classified, failed, skipped int
		for _, doc := range claim.Documents {
			switch {
			case doc.Classification == nil:
				skipped++
			case doc.Classification.Failed:
				failed++
			default:
				classified++
			}
		}

		rt.Logger.InfoContext(
			ctx, "classify node complete",
			"claim_id", claim.ID,
			"classified", classified,
			"failed", failed,
			"skipped", skipped,
		)

		return s.Set(KeyClaim, claim), nil
	})
}

func classifyDocuments(ctx context.Context, rt *Runtime, claim *Claim) error {
	prompt, err := prompts.Compose(ctx, rt.Prompts, prompts.StageClassify)
	if err != nil {
		return fmt.Errorf("compose prompt: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rt.workerCount(len(claim.Documents)))

	for i, doc := range claim.Documents {
		if len(doc.PageImages) == 0 {
			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			c, raw, err := classifyDocument(gctx, rt.Oracle, prompt, doc.PageImages)
			doc.RawResponse = raw

			if err != nil {
				doc.Classification = FailedClassification()

				rt.Logger.WarnContext(
					gctx, "document classification failed",
					"claim_id", claim.ID,
					"document", i+1,
					"filename", doc.Filename,
					"error", err,
				)

				if rt.ClassifyFailure == FailAbort {
					return fmt.Errorf("document %d (%s): %w", i+1, doc.Filename, err)
				}
				return nil
			}

			doc.Classification = c
			return nil
		})
	}

	return g.Wait()
}

func classifyDocument(
	ctx context.Context,
	o oracle.Oracle,
	prompt string,
	pages [][]byte,
) (*Classification, string, error) {
	parts := make([]oracle.Part, 0, len(pages)+1)
	for _, page := range pages {
		parts = append(parts, oracle.Image(page, "image/png"))
	}
	parts = append(parts, oracle.Text(prompt))

	raw, err := o.Ask(ctx, parts)
	if err != nil {
		return nil, raw, fmt.Errorf("%w: oracle: %w", ErrClassificationParse, err)
	}

	c, err := ParseClassification(raw)
	if err != nil {
		return nil, raw, err
	}

	return c, raw, nil
}

// ParseClassification extracts the first JSON object from an oracle reply
// and maps it to a Classification. A missing or unrecognized doctype maps to
// DocUnknown, missing structureddata to an empty map, and a missing
// confidence to 0. Confidence is clamped to [0, 1].
func ParseClassification(raw string) (*Classification, error) {
	data, err := formatting.Parse[map[string]any](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassificationParse, err)
	}

	c := &Classification{
		DocType:         DocUnknown,
		ExtractedFields: asObject(firstOf(data, "structureddata", "structured_data")),
	}

	if name, ok := asString(firstOf(data, "doctype", "doc_type")); ok {
		c.DocType = ParseDocType(name)
	}

	if conf, ok := asFloat(data["confidence"]); ok {
		c.Confidence = min(max(conf, 0), 1)
	}

	return c, nil
}
