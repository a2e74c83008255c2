package serverutils

import (
	"errors"

	"agentcraft-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type BaseResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Code:    code,
		Message: message,
	}
}

// ErrorHandlerMiddleware converts errors returned by handlers into a uniform
// JSON envelope. Classified errors map to their HTTP status; everything else
// becomes a 500 with a generic message.
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

		status := apperror.HTTPStatus(apperror.KindOf(err))
		return ctx.Status(status).JSON(ErrorResponse(status, apperror.SafeMessage(err)))
	}
}
