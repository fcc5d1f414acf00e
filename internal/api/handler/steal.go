package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/kabak/internal/api/middleware"
	"github.com/mcoot/kabak/internal/api/response"
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/game"
)

// StealHandler handles the robbery endpoints
type StealHandler struct {
	errorWriter
	gameController *game.Controller
}

// NewStealHandler creates a new steal handler
func NewStealHandler(gameController *game.Controller, logger *slog.Logger, alert middleware.AlertFunc) *StealHandler {
	return &StealHandler{
		errorWriter:    errorWriter{logger: logger, alert: alert},
		gameController: gameController,
	}
}

// Options handles GET /api/v1/steal
func (h *StealHandler) Options(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	opts, err := h.gameController.RequestSteal(r.Context(), ident.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StealOptionsFromResult(opts))
}

// Resolve handles POST /api/v1/steal/{victim_id}
func (h *StealHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())
	victim := model.PlayerID(mux.Vars(r)["victim_id"])

	result, err := h.gameController.ResolveSteal(r.Context(), ident.ID, victim)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StealFromResult(result))
}
