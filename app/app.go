package app

import (
	"log/slog"

	"note-store/database"
	"note-store/services"
	"note-store/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store     *database.NoteStore
	Notes     *services.NoteService
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(store *database.NoteStore, logger *slog.Logger) *App {
	v := validator.New()
	return &App{
		Store:     store,
		Notes:     services.NewNoteService(store, v),
		Validator: v,
		Logger:    logger,
	}
}
