package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/wmuchiri/kaziflow/internal/config"
	"github.com/wmuchiri/kaziflow/internal/database"
	"github.com/wmuchiri/kaziflow/internal/logger"
)

// App is the dependency container for the CLI application
type App struct {
	DB     *sql.DB
	Store  *database.Store
	Config *config.Config
	Logger *zap.Logger
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	log, err := logger.New(config.AppConfig.LogJSON, config.AppConfig.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Open database with proper pragmas and run migrations
	db, err := database.Open(config.AppConfig.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Verify database connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &App{
		DB:     db,
		Store:  database.NewStore(db),
		Config: config.AppConfig,
		Logger: log,
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
