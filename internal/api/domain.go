package api

import (
	"github.com/JaimeStill/superclaims/internal/claims"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Claims claims.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Claims: claims.New(runtime.Workflow, runtime.Logger),
	}
}
