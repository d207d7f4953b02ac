package middleware

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wildtrack-backend/internal/transport"
)

// Recoverer turns a panic into a 500. The stack trace is only included in
// the body when showStack is set.
func Recoverer(log *zap.Logger, showStack bool) func(http.Handler) http.Handler {
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

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				err = errors.WithStack(err)
				stack := fmt.Sprintf("%+v", err)

				RequestLogger(log, r).Error("panic recovered",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("error", err.Error()),
					zap.String("stack", stack),
				)

				body := transport.ErrorResponse{Success: false, Message: "Internal server error"}
				if showStack {
					body.Stack = stack
				}
				transport.WriteJSON(w, http.StatusInternalServerError, body)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
