package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"note-store/services"
	"note-store/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// noteError maps service errors onto HTTP responses
func noteError(c *fiber.Ctx, message string, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": validationErrs,
		})
	case errors.Is(err, services.ErrNoteNotFound):
		return notFound(c, "Note not found")
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

func paramKey(c *fiber.Ctx) (int64, bool) {
	key, err := strconv.ParseInt(c.Params("key"), 10, 64)
	return key, err == nil
}

func paramPosition(c *fiber.Ctx) (int, bool) {
	position, err := strconv.Atoi(c.Params("position"))
	return position, err == nil && position >= 0
}
