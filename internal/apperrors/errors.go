package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrNotFound is returned when a user or task does not exist, or is not
	// owned by the requesting user.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when a username or email is already taken.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrForbidden is returned when the caller lacks the role or the action is protected.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned by login for unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when no usable identity is attached to the request.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation is returned when input fails validation.
	ErrValidation = errors.New("validation failed")
)

// HTTPError is the public shape of a domain error.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MapToHTTP maps domain errors to a status code and a message safe to show
// clients. Anything unrecognised becomes a generic 500.
func MapToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return &HTTPError{StatusCode: fiber.StatusNotFound, Message: "Not found"}
	case errors.Is(err, ErrAlreadyExists):
		return &HTTPError{StatusCode: fiber.StatusConflict, Message: err.Error()}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{StatusCode: fiber.StatusForbidden, Message: err.Error()}
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{StatusCode: fiber.StatusUnauthorized, Message: "Invalid credentials"}
	case errors.Is(err, ErrUnauthorized):
		return &HTTPError{StatusCode: fiber.StatusUnauthorized, Message: "Unauthorized"}
	case errors.Is(err, ErrValidation):
		return &HTTPError{StatusCode: fiber.StatusBadRequest, Message: "Validation error"}
	default:
		return &HTTPError{StatusCode: fiber.StatusInternalServerError, Message: "internal server error"}
	}
}
