// Package middleware provides the HTTP middleware stack used by modules:
// panic recovery, request logging, and CORS.
package middleware

import "net/http"

// Func wraps a handler with additional behavior.
type Func = func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware. The first middleware
// added is the outermost at request time.
type System interface {
	Use(mw ...Func)
	Apply(handler http.Handler) http.Handler
	Len() int
}

type stack struct {
	funcs []Func
}

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

func (s *stack) Use(mw ...Func) {
	for _, fn := range mw {
		if fn != nil {
			s.funcs = append(s.funcs, fn)
		}
	}
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.funcs) - 1; i >= 0; i-- {
		handler = s.funcs[i](handler)
	}
	return handler
}

func (s *stack) Len() int {
	return len(s.funcs)
}
