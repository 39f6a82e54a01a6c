package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// statusFor maps an engine or registry error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrInvalidFEN),
		errors.Is(err, errors.ErrInvalidMove),
		errors.Is(err, errors.ErrInvalidSquare):
		return fiber.StatusBadRequest
	case errors.Is(err, errors.ErrNoPieceAtSource),
		errors.Is(err, errors.ErrWrongTurn),
		errors.Is(err, errors.ErrNotInLegalSet),
		errors.Is(err, errors.ErrGameAlreadyOver),
		errors.Is(err, errors.ErrNoHistory):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrTooManyGames):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, errors.ErrSubscriberExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
