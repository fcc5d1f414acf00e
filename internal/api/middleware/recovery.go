package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/mcoot/kabak/internal/api/apierr"
)

// AlertFunc reports an unexpected failure to the administrator
type AlertFunc func(ctx context.Context, message string)

// Recovery creates panic recovery middleware for the API.
// It logs the stack, alerts the administrator and returns a JSON error.
func Recovery(logger *slog.Logger, alert AlertFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)

					if alert != nil {
						alert(r.Context(), fmt.Sprintf("panic in %s %s: %v", r.Method, r.URL.Path, err))
					}

					apierr.WriteError(w, apierr.NewInternalError())
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
