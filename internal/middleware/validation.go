package middleware

import (
	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
	"wikiquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalsGenerateRequest = "validated_generate_request"
	LocalsHistoryQuery    = "validated_history_query"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateRequest parses and validates the generate body and stores
// it in Locals for the handler.
func (vm *ValidationMiddleware) ValidateGenerateRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("request body must be a JSON object with a url field")
		}

		if err := vm.validator.Struct(req); err != nil {
			return err // This will be handled by ErrorHandler
		}

		c.Locals(LocalsGenerateRequest, req)
		return c.Next()
	}
}

// ValidateHistoryParams validates the limit and offset query parameters.
func (vm *ValidationMiddleware) ValidateHistoryParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.HistoryQuery
		if err := c.QueryParser(&q); err != nil {
			return domain.NewInvalidInputError("limit and offset must be integers")
		}

		if err := vm.validator.Struct(q); err != nil {
			return err
		}

		c.Locals(LocalsHistoryQuery, q)
		return c.Next()
	}
}
