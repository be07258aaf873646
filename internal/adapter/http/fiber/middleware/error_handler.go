package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/apperrors"
)

// ErrorHandler maps application errors to HTTP status codes. Anything not
// recognized is a 500 and gets logged with the request path.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		var validationErr *apperrors.ValidationError
		var invalidStateErr *apperrors.InvalidStateError

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.As(err, &validationErr):
			code = fiber.StatusBadRequest
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			code = fiber.StatusUnauthorized
		case errors.Is(err, apperrors.ErrForbidden):
			code = fiber.StatusForbidden
		case apperrors.IsNotFound(err):
			code = fiber.StatusNotFound
		case errors.Is(err, apperrors.ErrEmailTaken):
			code = fiber.StatusConflict
		case errors.As(err, &invalidStateErr):
			code = fiber.StatusConflict
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
