package setup

import (
	"context"
	"log/slog"
	"time"

	"note-store/app"
	"note-store/config"
	"note-store/database"

	"github.com/gofiber/fiber/v2"
)

// InitDatabase opens the note database, creating or rebuilding its schema
func InitDatabase(cfg *config.Config, logger *slog.Logger) (*database.NoteStore, error) {
	db, err := database.Open(database.Config{
		Path:   cfg.DBPath,
		Driver: cfg.DBDriver,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("database initialized", "path", cfg.DBPath, "driver", cfg.DBDriver)
	return database.NewNoteStore(db), nil
}

// InitApp initializes the application with all dependencies
func InitApp(store *database.NoteStore, logger *slog.Logger) *app.App {
	application := app.New(store, logger)
	logger.Info("application initialized with dependency injection")
	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(fiberApp *fiber.App, store *database.NoteStore, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if fiberApp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := fiberApp.ShutdownWithContext(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}

	// Close database
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		} else {
			logger.Info("database closed")
		}
	}
}
