package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/superclaims/internal/oracle"
	"github.com/JaimeStill/superclaims/internal/prompts"
	"github.com/JaimeStill/superclaims/pkg/formatting"
)

type aggregateFile struct {
	StructuredData map[string]any `json:"structured_data"`
}

type aggregate struct {
	Files []aggregateFile `json:"files"`
}

// ValidateNode returns a state node that cross-validates the extracted
// fields of every classified document in one oracle exchange. Failures never
// propagate: the claim receives FailedValidation instead.
func ValidateNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		claim, err := extractClaim(s)
		if err != nil {
			return s, fmt.Errorf("validate: %w", err)
		}

		v, err := crossValidate(ctx, rt, claim)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "cross-validation failed, using conservative default",
				"claim_id", claim.ID,
				"error", err,
			)
			v = FailedValidation(err.Error())
		}

		claim.Validation = v

		rt.Logger.InfoContext(
			ctx, "validate node complete",
			"claim_id", claim.ID,
			"valid", v.Valid,
			"issue_count", len(v.Issues),
		)

		return s.Set(KeyClaim, claim), nil
	})
}

func crossValidate(ctx context.Context, rt *Runtime, claim *Claim) (*Validation, error) {
	prompt, err := prompts.Compose(ctx, rt.Prompts, prompts.StageCrossValidate)
	if err != nil {
		return nil, fmt.Errorf("compose prompt: %w", err)
	}

	payload, err := AggregatePayload(claim)
	if err != nil {
		return nil, err
	}

	raw, err := rt.Oracle.Ask(ctx, []oracle.Part{
		oracle.Text(prompt),
		oracle.Text(payload),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: oracle: %w", ErrValidationParse, err)
	}

	return ParseValidation(raw)
}

// AggregatePayload renders the extracted fields of each classified document,
// in claim order, as the JSON text block sent for cross-validation. Document
// type and confidence are not included.
func AggregatePayload(claim *Claim) (string, error) {
	agg := aggregate{Files: []aggregateFile{}}
	for _, doc := range claim.Classified() {
		fields := doc.Classification.ExtractedFields
		if fields == nil {
			fields = map[string]any{}
		}
		agg.Files = append(agg.Files, aggregateFile{StructuredData: fields})
	}

	data, err := json.Marshal(agg)
	if err != nil {
		return "", fmt.Errorf("marshal aggregate: %w", err)
	}
	return string(data), nil
}

// ParseValidation extracts the first JSON object from an oracle reply and
// normalizes it to a Validation. Absent or mistyped fields take their zero
// defaults. The member_id_match and required_docs_present spellings are
// accepted as aliases.
func ParseValidation(raw string) (*Validation, error) {
	data, err := formatting.Parse[map[string]any](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationParse, err)
	}

	v := &Validation{
		Issues: asStrings(data["issues"]),
	}

	v.Valid, _ = asBool(data["valid"])
	v.TotalAmount, _ = asFloat(data["total_amount"])
	v.MemberIDConsistent, _ = asBool(firstOf(data, "member_id_consistent", "member_id_match"))
	v.RequiredDocumentsPresent, _ = asBool(firstOf(data, "required_documents_present", "required_docs_present"))

	return v, nil
}
