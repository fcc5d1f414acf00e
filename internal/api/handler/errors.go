package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/kabak/internal/api/apierr"
	"github.com/mcoot/kabak/internal/api/middleware"
)

// errorWriter renders handler errors. Errors without a domain mapping are
// logged and reported to the administrator.
type errorWriter struct {
	logger *slog.Logger
	alert  middleware.AlertFunc
}

func (e errorWriter) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.IsUnexpected(err) {
		e.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		if e.alert != nil {
			e.alert(r.Context(), fmt.Sprintf("%s %s failed: %v", r.Method, r.URL.Path, err))
		}
	}
	apierr.WriteError(w, err)
}
