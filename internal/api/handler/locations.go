package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/kabak/internal/api/apierr"
	"github.com/mcoot/kabak/internal/api/middleware"
	"github.com/mcoot/kabak/internal/api/request"
	"github.com/mcoot/kabak/internal/api/response"
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/game"
)

// LocationHandler handles board, location and guess endpoints
type LocationHandler struct {
	errorWriter
	gameController *game.Controller
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(gameController *game.Controller, logger *slog.Logger, alert middleware.AlertFunc) *LocationHandler {
	return &LocationHandler{
		errorWriter:    errorWriter{logger: logger, alert: alert},
		gameController: gameController,
	}
}

// Board handles GET /api/v1/locations
func (h *LocationHandler) Board(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	board, err := h.gameController.Board(r.Context(), ident.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LocationsFromResult(board))
}

// Open handles GET /api/v1/locations/open
func (h *LocationHandler) Open(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	open, err := h.gameController.OpenLocations(r.Context(), ident.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LocationsFromResult(open))
}

// Get handles GET /api/v1/locations/{id}
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	id, err := locationID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	view, err := h.gameController.Location(r.Context(), ident.ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !ident.Admin {
		view.SecretWord = ""
	}

	response.JSON(w, http.StatusOK, response.LocationFromResult(view))
}

// Guess handles POST /api/v1/locations/{id}/guess
func (h *LocationHandler) Guess(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	id, err := locationID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}

	result, err := h.gameController.SubmitGuess(r.Context(), ident.ID, id, req.Word)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessFromResult(result))
}

func locationID(r *http.Request) (model.LocationID, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, apierr.NewInvalidRequestError("Location id must be a number")
	}
	return model.LocationID(id), nil
}
