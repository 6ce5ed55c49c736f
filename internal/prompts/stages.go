package prompts

import "slices"

// Stage identifies the pipeline stage a prompt belongs to.
type Stage string

// Stages that consult the oracle.
const (
	StageClassify      Stage = "classify"
	StageCrossValidate Stage = "cross_validate"
)

var stages = []Stage{
	StageClassify,
	StageCrossValidate,
}

// Stages returns the stages that carry prompts.
func Stages() []Stage {
	return stages
}

// ParseStage validates a string as a known stage.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
