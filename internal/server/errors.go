package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Error is the JSON error body every failing handler returns.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e Error) Error() string {
	return e.Message
}

func NewError(code int, msg string) Error {
	return Error{Code: code, Message: msg}
}

func ErrBadRequest(msg string) Error {
	if msg == "" {
		msg = "invalid JSON request"
	}
	return Error{Code: fiber.StatusBadRequest, Message: msg}
}

func ErrInvalidID() Error {
	return Error{Code: fiber.StatusBadRequest, Message: "invalid id given"}
}

func ErrUnauthorized(msg string) Error {
	return Error{Code: fiber.StatusUnauthorized, Message: msg}
}

func ErrNotFound(resource string, id any) Error {
	return Error{Code: fiber.StatusNotFound, Message: fmt.Sprintf("%s with %v not found", resource, id)}
}

func ErrNotConfigured() Error {
	return Error{Code: fiber.StatusServiceUnavailable, Message: "CLARYNT_OPENAI_API_KEY not set on server"}
}

func ErrTooManyRequests() Error {
	return Error{Code: fiber.StatusTooManyRequests, Message: "rate limit exceeded"}
}

// ValidationError carries per-field validation failures.
type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errs map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errs,
	}
}

// validateStruct runs tag validation over v and returns field errors, or nil
// when v is valid.
func validateStruct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
	}
	return out
}

var validate = validator.New()

// errorHandler maps handler errors to their JSON bodies.
func errorHandler(c *fiber.Ctx, err error) error {
	var apiErr Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Code).JSON(apiErr)
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return c.Status(valErr.Status).JSON(valErr)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		apiErr = NewError(fiberErr.Code, fiberErr.Message)
	} else {
		apiErr = NewError(fiber.StatusInternalServerError, err.Error())
	}
	fmt.Printf("%s request failed with code %d and message: %s\n", time.Now().Format(time.RFC3339), apiErr.Code, apiErr.Message)
	return c.Status(apiErr.Code).JSON(apiErr)
}
