package setup

import (
	"note-store/app"
	"note-store/config"
	"note-store/handlers"
	"note-store/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App, cfg *config.Config) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := fiberApp.Group("/api", middleware.TokenRequired(cfg.APIToken))

	// Fixed paths first so they are not captured by :key
	api.Get("/notes", handlers.ListNotes(application))
	api.Get("/notes/count", handlers.CountNotes(application))
	api.Get("/notes/position/:position", handlers.GetNoteAt(application))
	api.Delete("/notes/position/:position", handlers.DeleteNoteAt(application))
	api.Delete("/notes", handlers.ClearNotes(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Get("/notes/:key", handlers.GetNote(application))
	api.Put("/notes/:key", handlers.UpdateNote(application))
	api.Delete("/notes/:key", handlers.DeleteNote(application))
}
