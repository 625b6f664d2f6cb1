// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Zayd-McArdle/MasjidApp/app/dto"
	businessflow "github.com/Zayd-McArdle/MasjidApp/business_flow"
	"github.com/Zayd-McArdle/MasjidApp/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"go.uber.org/zap"
)

// FileHashHeader carries the hex SHA-256 digest of a prayer-times payload.
const FileHashHeader = "X-File-Hash"

const defaultRequestTimeout = 30 * time.Second

// base holds what every feature handler shares.
type base struct {
	validator *validator.Validate
	logger    *zap.Logger
	timeout   time.Duration
}

func newBase(logger *zap.Logger, timeout time.Duration) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return base{validator: validator.New(), logger: logger, timeout: timeout}
}

func (h *base) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *base) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// validate runs struct validation and writes the 400 response on failure.
// It reports whether the handler may continue.
func (h *base) validate(c fiber.Ctx, req any) (bool, error) {
	err := h.validator.Struct(req)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", err.Error())
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, getValidationErrorMessage(e))
	}
	return false, h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", messages)
}

// fail maps a flow error onto a status code. Server-side failures are logged
// and their details withheld from the client.
func (h *base) fail(c fiber.Ctx, err error, message string) error {
	code := businessflow.CodeOf(err)
	switch code {
	case businessflow.CodeInvalidRequest:
		return h.ErrorResponse(c, fiber.StatusBadRequest, message, code, err.Error())
	case businessflow.CodeNotFound, businessflow.CodeAuthorNotFound:
		return h.ErrorResponse(c, fiber.StatusNotFound, message, code, err.Error())
	case businessflow.CodeConflict:
		return h.ErrorResponse(c, fiber.StatusConflict, message, code, err.Error())
	}

	h.logger.Error(message,
		zap.String("request_id", requestID(c)),
		zap.String("path", c.Path()),
		zap.String("code", code),
		zap.Error(err),
	)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}

// failCollection is fail for list endpoints, where nothing to list is 204.
func (h *base) failCollection(c fiber.Ctx, err error, message string) error {
	if businessflow.IsNotFound(err) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return h.fail(c, err, message)
}

func (h *base) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, requestID(c))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, h.timeout)
	return ctx, cancel
}

func requestID(c fiber.Ctx) string {
	if id := requestid.FromContext(c); id != "" {
		return id
	}
	return c.Get("X-Request-ID")
}

// optionalQuery distinguishes an absent query parameter from an empty one.
func optionalQuery(c fiber.Ctx, key string) *string {
	args := c.Request().URI().QueryArgs()
	if !args.Has(key) {
		return nil
	}
	value := string(args.Peek(key))
	return &value
}

func idParam(c fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, fmt.Errorf("id must be an integer: %w", err)
	}
	return id, nil
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "url":
		return err.Field() + " must be a valid URL"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
