package oracle

import "errors"

var (
	ErrEmptyResponse   = errors.New("oracle returned an empty response")
	ErrNoParts         = errors.New("oracle request has no content parts")
	ErrUnknownProvider = errors.New("unknown oracle provider")
)
