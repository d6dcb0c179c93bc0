package handlers

import (
	"note-store/app"
	"note-store/models"
	"note-store/services"

	"github.com/gofiber/fiber/v2"
)

// ListNotes returns a page of notes, newest first, optionally filtered by q
func ListNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", services.DefaultPageSize)
		offset := c.QueryInt("offset", 0)

		page, err := a.Notes.Search(c.Query("q"), offset, limit)
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{
			"notes":  page.Notes,
			"total":  page.Total,
			"limit":  page.Limit,
			"offset": page.Offset,
		})
	}
}

// CountNotes returns the number of stored notes
func CountNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := a.Notes.Count()
		if err != nil {
			return serverErrorWithDetails(c, "Failed to count notes", err)
		}
		return success(c, fiber.Map{"count": count})
	}
}

// GetNote retrieves a note by key
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := paramKey(c)
		if !ok {
			return badRequest(c, "key must be an integer")
		}

		note, err := a.Notes.Get(key)
		if err != nil {
			return noteError(c, "Failed to fetch note", err)
		}
		return success(c, fiber.Map{"note": note})
	}
}

// GetNoteAt retrieves the note at a position in the date-ordered list
func GetNoteAt(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		position, ok := paramPosition(c)
		if !ok {
			return badRequest(c, "position must be a non-negative integer")
		}

		note, err := a.Notes.GetAt(position)
		if err != nil {
			return noteError(c, "Failed to fetch note", err)
		}
		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote inserts a new note
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		note, err := a.Notes.Create(req)
		if err != nil {
			return noteError(c, "Failed to save note", err)
		}
		return created(c, fiber.Map{"note": note})
	}
}

// UpdateNote overwrites an existing note
func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := paramKey(c)
		if !ok {
			return badRequest(c, "key must be an integer")
		}

		var req models.UpdateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		note, err := a.Notes.Update(key, req)
		if err != nil {
			return noteError(c, "Failed to update note", err)
		}
		return success(c, fiber.Map{"note": note})
	}
}

// DeleteNote removes a note by key
func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, ok := paramKey(c)
		if !ok {
			return badRequest(c, "key must be an integer")
		}

		if err := a.Notes.Delete(key); err != nil {
			return noteError(c, "Failed to delete note", err)
		}
		return success(c, fiber.Map{"message": "Note deleted successfully"})
	}
}

// DeleteNoteAt removes the note at a position in the date-ordered list
func DeleteNoteAt(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		position, ok := paramPosition(c)
		if !ok {
			return badRequest(c, "position must be a non-negative integer")
		}

		if err := a.Notes.DeleteAt(position); err != nil {
			return noteError(c, "Failed to delete note", err)
		}
		return success(c, fiber.Map{"message": "Note deleted successfully"})
	}
}

// ClearNotes removes every note
func ClearNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.Notes.Clear(); err != nil {
			return serverErrorWithDetails(c, "Failed to clear notes", err)
		}
		return success(c, fiber.Map{"message": "All notes deleted"})
	}
}
