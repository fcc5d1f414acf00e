package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/kabak/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeAdminOnly          = "ADMIN_ONLY"
	CodeAdminCannotJoin    = "ADMIN_CANNOT_JOIN"
	CodeNotRegistered      = "NOT_REGISTERED"
	CodeNotStarted         = "NOT_STARTED"
	CodeNoPlayers          = "NO_PLAYERS"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeInvalidLength      = "INVALID_LENGTH"
	CodeNotInDictionary    = "NOT_IN_DICTIONARY"
	CodeLocationNotFound   = "LOCATION_NOT_FOUND"
	CodeLocationClosed     = "LOCATION_CLOSED"
	CodeDuplicateGuess     = "DUPLICATE_GUESS"
	CodeInvalidTarget      = "INVALID_TARGET"
	CodeInsufficientScore  = "INSUFFICIENT_SCORE"
	CodeNoEligibleTarget   = "NO_ELIGIBLE_TARGET"
	CodePersistenceFailure = "PERSISTENCE_FAILURE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// IsUnexpected reports whether err has no domain mapping and would be
// rendered as an internal error
func IsUnexpected(err error) bool {
	return toHTTPError(err).apiError.Code == CodeInternalError
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Persistence is checked first: its wrapping may carry other sentinels
	case errors.Is(err, model.ErrPersistenceFailure):
		return &httpError{http.StatusServiceUnavailable, APIError{CodePersistenceFailure, "Game state could not be saved, try again"}}

	case errors.Is(err, model.ErrAdminOnly):
		return &httpError{http.StatusForbidden, APIError{CodeAdminOnly, "Only the administrator can do that"}}
	case errors.Is(err, model.ErrAdminCannotJoin):
		return &httpError{http.StatusForbidden, APIError{CodeAdminCannotJoin, "The administrator cannot join the game"}}
	case errors.Is(err, model.ErrNotRegistered):
		return &httpError{http.StatusForbidden, APIError{CodeNotRegistered, "Join the game first"}}
	case errors.Is(err, model.ErrNotStarted):
		return &httpError{http.StatusConflict, APIError{CodeNotStarted, "The game has not started yet"}}
	case errors.Is(err, model.ErrNoPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNoPlayers, "Nobody has joined yet"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}

	case errors.Is(err, model.ErrInvalidLength):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLength, "The word must have exactly five letters"}}
	case errors.Is(err, model.ErrNotInDictionary):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNotInDictionary, "No such word in the dictionary"}}
	case errors.Is(err, model.ErrLocationNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeLocationNotFound, "Location not found"}}
	case errors.Is(err, model.ErrLocationClosed):
		return &httpError{http.StatusConflict, APIError{CodeLocationClosed, "This location is already closed"}}
	case errors.Is(err, model.ErrDuplicateGuess):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateGuess, "That word was the previous attempt here"}}

	case errors.Is(err, model.ErrInvalidTarget):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTarget, "You cannot rob that player"}}
	case errors.Is(err, model.ErrInsufficientScore):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientScore, "Your score is too low to steal"}}
	case errors.Is(err, model.ErrNoEligibleTarget):
		return &httpError{http.StatusConflict, APIError{CodeNoEligibleTarget, "Nobody has enough points to rob"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
