package serverutils

import (
	"errors"

	"library-membership-be/internal/repository/implementation"
	"library-membership-be/pkg/membership"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandlerMiddleware translates domain errors bubbling out of
// handlers into consistent HTTP responses.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		switch {
		case errors.Is(err, membership.ErrValidation):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(422, err.Error()))
		case errors.Is(err, membership.ErrInvalidTransition):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, err.Error()))
		case errors.Is(err, membership.ErrAlreadyFinalized):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, err.Error()))
		case errors.Is(err, implementation.ErrVersionConflict):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(409, "record was modified concurrently, retry the operation"))
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, "resource not found"))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
	}
}
