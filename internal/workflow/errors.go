// Package workflow implements the claim pipeline: a four-node state graph
// (rasterize → classify → validate → decide) threading one Claim through
// page rendering, document classification, cross-validation and the final
// decision.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrDecode              = errors.New("document cannot be rasterized")
	ErrClassificationParse = errors.New("classification response could not be parsed")
	ErrValidationParse     = errors.New("validation response could not be parsed")
	ErrMissingState        = errors.New("missing workflow state")
)
