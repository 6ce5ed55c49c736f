package prompts

import "errors"

// ErrInvalidStage is returned for a stage with no prompt.
var ErrInvalidStage = errors.New("unknown prompt stage")
