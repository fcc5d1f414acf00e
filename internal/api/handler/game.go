package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/kabak/internal/api/apierr"
	"github.com/mcoot/kabak/internal/api/middleware"
	"github.com/mcoot/kabak/internal/api/request"
	"github.com/mcoot/kabak/internal/api/response"
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/game"
)

// GameHandler handles session lifecycle and read endpoints
type GameHandler struct {
	errorWriter
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, logger *slog.Logger, alert middleware.AlertFunc) *GameHandler {
	return &GameHandler{
		errorWriter:    errorWriter{logger: logger, alert: alert},
		gameController: gameController,
	}
}

// Join handles POST /api/v1/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, r, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = ident.Name
	}

	player, err := h.gameController.Join(r.Context(), ident.ID, name)
	switch {
	case errors.Is(err, model.ErrAlreadyJoined):
		response.JSON(w, http.StatusOK, response.JoinResponse{
			Player:        response.PlayerFromModel(*player),
			AlreadyJoined: true,
		})
	case err != nil:
		h.writeError(w, r, err)
	default:
		response.JSON(w, http.StatusCreated, response.JoinResponse{
			Player: response.PlayerFromModel(*player),
		})
	}
}

// Begin handles POST /api/v1/begin
func (h *GameHandler) Begin(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	result, err := h.gameController.Begin(r.Context(), ident.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BeginFromResult(result))
}

// Reset handles POST /api/v1/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	if err := h.gameController.Reset(r.Context(), ident.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.NoContent(w)
}

// Menu handles GET /api/v1/menu
func (h *GameHandler) Menu(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	menu, err := h.gameController.Menu(r.Context(), ident.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MenuFromResult(menu))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	lb, err := h.gameController.LeaderboardFor(r.Context(), ident.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromResult(lb))
}

// Health handles GET /api/v1/health
func (h *GameHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{
		Status:  "ok",
		Session: response.GameStatusFromResult(h.gameController.Status(r.Context())),
	})
}
