package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/kabak/internal/dependencies/clock"
	"github.com/mcoot/kabak/internal/dependencies/random"
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/notify"
	"github.com/mcoot/kabak/internal/notify/sse"
	"github.com/mcoot/kabak/internal/services/catalog"
	"github.com/mcoot/kabak/internal/services/dictionary"
	"github.com/mcoot/kabak/internal/services/game"
	"github.com/mcoot/kabak/internal/services/robbery"
	"github.com/mcoot/kabak/internal/storage"
	boltstorage "github.com/mcoot/kabak/internal/storage/bolt"
	filestorage "github.com/mcoot/kabak/internal/storage/file"
	"github.com/mcoot/kabak/internal/storage/memory"
	redisstorage "github.com/mcoot/kabak/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeBolt   = "bolt"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Catalog           *catalog.Catalog
	DictionaryService *dictionary.Service
	RobberyResolver   *robbery.Resolver
	GameController    *game.Controller

	// Notifications
	Dispatcher *notify.Dispatcher
	HubManager *sse.HubManager

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// AdminID is the single administrator identity (required)
	AdminID model.PlayerID
	// InactivityThreshold enables the idle-player advisory when positive
	InactivityThreshold time.Duration
	// LocationsPath is the JSON location catalog (optional)
	// If empty, the catalog is empty
	LocationsPath string
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually; if set, it must be readable
	DictionaryPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file", "memory", "redis" or "bolt")
	// If empty, defaults to "memory"
	StorageType string
	// StatePath is the snapshot file for the "file" backend
	StatePath string
	// BoltPath is the database file for the "bolt" backend
	BoltPath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired and the
// persisted session restored
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.AdminID == "" {
		return nil, errors.New("AdminID is required")
	}

	store, closer, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(nil)
	if cfg.LocationsPath != "" {
		cat, err = catalog.LoadFromFile(cfg.LocationsPath)
	}
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("load locations: %w", err)
	}
	if cat.Len() == 0 {
		logger.Warn("no locations configured", slog.String("path", cfg.LocationsPath))
	}

	gameCfg := game.Config{
		AdminID:             cfg.AdminID,
		InactivityThreshold: cfg.InactivityThreshold,
	}
	app := newWithDependencies(store, cat, clock.New(), random.New(), gameCfg, logger, notify.NewLogSink(logger))
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	if cfg.DictionaryPath != "" {
		if err := app.DictionaryService.LoadFromFile(ctx, cfg.DictionaryPath); err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
	}

	if err := app.GameController.Load(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func newStorage(cfg Config) (storage.Storage, io.Closer, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil, nil
	case StorageTypeFile:
		if cfg.StatePath == "" {
			return nil, nil, errors.New("StatePath required when StorageType is file")
		}
		store, err := filestorage.New(cfg.StatePath)
		return store, nil, err
	case StorageTypeBolt:
		if cfg.BoltPath == "" {
			return nil, nil, errors.New("BoltPath required when StorageType is bolt")
		}
		store, err := boltstorage.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		store, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("invalid StorageType %q: must be 'file', 'memory', 'redis' or 'bolt'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	cat *catalog.Catalog,
	clk clock.Clock,
	rnd random.Random,
	gameCfg game.Config,
	logger *slog.Logger,
	sinks ...notify.Sink,
) *App {
	hubManager := sse.NewHubManager(logger)
	dispatcher := notify.NewDispatcher(gameCfg.AdminID, clk, logger, append(sinks, hubManager)...)

	dictService := dictionary.New(logger)
	resolver := robbery.New(rnd)
	gameController := game.NewController(gameCfg, cat, store, dictService, resolver, dispatcher, clk, rnd, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Catalog:           cat,
		DictionaryService: dictService,
		RobberyResolver:   resolver,
		GameController:    gameController,
		Dispatcher:        dispatcher,
		HubManager:        hubManager,
	}
}

// Close flushes pending notifications and releases storage resources
func (a *App) Close() error {
	a.Dispatcher.Close()
	a.HubManager.Close()

	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
