package middleware

import (
	"errors"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/constants"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/gofiber/fiber/v2"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := ErrorCode(err)
		status := constants.GetHTTPStatus(code)

		return c.Status(status).JSON(fiber.Map{
			"code":    code,
			"message": constants.GetErrorMessage(code),
		})
	}
}

// ErrorCode maps a service failure to its public error code. Database and
// unknown failures collapse into INTERNAL_ERROR so internals stay hidden.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		return constants.ErrCodeTransactionNotFound
	case errors.Is(err, service.ErrTransactionAlreadyProcessed):
		return constants.ErrCodeAlreadyProcessed
	case errors.Is(err, service.ErrConfirmationInProgress):
		return constants.ErrCodeConfirmationInProgress
	case errors.Is(err, service.ErrSubacquirerNotFound):
		return constants.ErrCodeSubacquirerNotFound
	case errors.Is(err, service.ErrSubacquirerInactive):
		return constants.ErrCodeSubacquirerUnavailable
	}

	var serviceErr service.Error
	if !errors.As(err, &serviceErr) {
		return constants.ErrCodeInternalError
	}

	switch serviceErr.Code {
	case service.ErrCodeValidation:
		return constants.ErrCodeValidationError
	case service.ErrCodeSubacquirerUnavailable:
		return constants.ErrCodeSubacquirerUnavailable
	case service.ErrCodeProviderError:
		return constants.ErrCodeProviderError
	default:
		return constants.ErrCodeInternalError
	}
}
