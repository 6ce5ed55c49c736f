package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/JaimeStill/superclaims/pkg/handlers"
)

// ErrInternal is the client-facing error written when a handler panics.
var ErrInternal = errors.New("internal server error")

// Recover returns middleware that converts a handler panic into a 500 JSON
// response. http.ErrAbortHandler is re-raised so the server can drop the
// connection.
func Recover(logger *slog.Logger) Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error(
					"handler panic",
					"method", r.Method,
					"uri", r.URL.RequestURI(),
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				handlers.RespondError(w, logger, http.StatusInternalServerError, ErrInternal)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
