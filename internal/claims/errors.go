package claims

import (
	"context"
	"errors"
	"net/http"

	"github.com/JaimeStill/superclaims/internal/workflow"
)

// Domain errors for claim operations.
var (
	ErrEmptyClaim   = errors.New("claim requires at least one file")
	ErrDuplicate    = errors.New("duplicate files detected, please upload unique files")
	ErrInvalidFile  = errors.New("invalid file")
	ErrFileTooLarge = errors.New("upload exceeds maximum size")
)

// MapHTTPStatus maps claim and workflow errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyClaim),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrInvalidFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, workflow.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrClassificationParse):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
