package httpapi

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/tickwatch/tickwatch/internal/risk"
	"github.com/tickwatch/tickwatch/internal/sighting"
)

// envelope is the uniform response wrapper used by every endpoint, success
// and error alike.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data"`
}

func success(c *fiber.Ctx, results int, data any) error {
	return c.JSON(envelope{Status: "success", Results: &results, Data: data})
}

func successMessage(c *fiber.Ctx, message string, results int, data any) error {
	return c.JSON(envelope{Status: "success", Message: message, Results: &results, Data: data})
}

// ErrorHandler maps errors onto the error envelope. Caller mistakes keep
// their message; domain conditions get their own status codes; anything
// else is logged and reported as an opaque server error so internal detail
// never crosses the boundary.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	var validationErr *risk.ValidationError
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.As(err, &validationErr):
		code = fiber.StatusBadRequest
		message = validationErr.Error()
	case errors.Is(err, sighting.ErrInsufficientData):
		code = fiber.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, sighting.ErrNoData):
		code = fiber.StatusNotFound
		message = err.Error()
	default:
		log.Printf("internal error: %v", err)
	}

	return c.Status(code).JSON(envelope{Status: "error", Message: message})
}
