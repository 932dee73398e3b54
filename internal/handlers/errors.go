package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/deraza/internal/pricing"
)

// orderError maps order-service failures to HTTP statuses. Template lookup
// and payload problems are the caller's fault; a section missing its ratio is
// bad administrative data and stays a server error.
func orderError(err error) error {
	var validationErr *pricing.ValidationError
	var configErr *pricing.ConfigError

	switch {
	case errors.Is(err, pricing.ErrTemplateNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, pricing.ErrTemplateKindMismatch):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErr):
		return fiber.NewError(fiber.StatusBadRequest, validationErr.Error())
	case errors.As(err, &configErr):
		return fiber.NewError(fiber.StatusInternalServerError, configErr.Error())
	}
	return err
}
