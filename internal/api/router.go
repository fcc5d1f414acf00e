package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/kabak/internal/api/handler"
	"github.com/mcoot/kabak/internal/api/middleware"
	"github.com/mcoot/kabak/internal/notify/sse"
	"github.com/mcoot/kabak/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	HubManager     *sse.HubManager
	// Alert reports unexpected failures to the administrator (optional)
	Alert middleware.AlertFunc
	// AdminTokenHash is a bcrypt hash the admin must present on every route (optional)
	AdminTokenHash string
	// RulesPath is the rule text file served by /rules
	RulesPath string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	logger := cfg.Logger.With(slog.String("component", "api"))

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, logger, cfg.Alert)
	locationHandler := handler.NewLocationHandler(cfg.GameController, logger, cfg.Alert)
	stealHandler := handler.NewStealHandler(cfg.GameController, logger, cfg.Alert)
	rulesHandler := handler.NewRulesHandler(cfg.RulesPath, logger, cfg.Alert)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(logger))
	api.Use(middleware.Recovery(logger, cfg.Alert))

	// Public routes
	api.HandleFunc("/health", gameHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/rules", rulesHandler.Get).Methods(http.MethodGet)

	adminIdentity := middleware.AdminIdentity(cfg.GameController.IsAdmin, cfg.AdminTokenHash)

	// Player routes (identity asserted by the chat gateway)
	players := api.NewRoute().Subrouter()
	players.Use(middleware.RequireIdentity())
	players.Use(adminIdentity)
	players.HandleFunc("/join", gameHandler.Join).Methods(http.MethodPost)
	players.HandleFunc("/menu", gameHandler.Menu).Methods(http.MethodGet)
	players.HandleFunc("/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)
	players.HandleFunc("/locations", locationHandler.Board).Methods(http.MethodGet)
	players.HandleFunc("/locations/open", locationHandler.Open).Methods(http.MethodGet)
	players.HandleFunc("/locations/{id:[0-9]+}", locationHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/locations/{id:[0-9]+}/guess", locationHandler.Guess).Methods(http.MethodPost)
	players.HandleFunc("/steal", stealHandler.Options).Methods(http.MethodGet)
	players.HandleFunc("/steal/{victim_id}", stealHandler.Resolve).Methods(http.MethodPost)

	if cfg.HubManager != nil {
		eventsHandler := handler.NewEventsHandler(cfg.HubManager)
		players.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)
	}

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(middleware.RequireIdentity())
	admin.Use(adminIdentity)
	admin.HandleFunc("/begin", gameHandler.Begin).Methods(http.MethodPost)
	admin.HandleFunc("/reset", gameHandler.Reset).Methods(http.MethodPost)

	return r
}
