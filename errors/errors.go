package errors

import (
	"fmt"
	"net/http"

	"github.com/ViaggioGiappone/trip-planner-backend/logger"
)

type ErrorType string

const (
	ValidationError   ErrorType = "VALIDATION_ERROR"
	NotFoundError     ErrorType = "NOT_FOUND"
	StoreError        ErrorType = "STORE_ERROR"
	ServerError       ErrorType = "SERVER_ERROR"
	UnknownCityError  ErrorType = "UNKNOWN_CITY"
	CityNotFoundError ErrorType = "CITY_NOT_FOUND"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code for the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return getHTTPStatus(e.Type)
	}
	return e.HTTPStatus
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewStoreError logs the original error and returns a sanitized message. The
// document store never surfaces these past its boundary; the helper is for
// write paths that report failure to the caller.
func NewStoreError(err error) *AppError {
	logger.GetLogger().Errorw("Store error", "error", err)
	return &AppError{
		Type:       StoreError,
		Message:    "Document store operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// UnknownCity flags a city name that is not in the static catalog.
func UnknownCity(name string) *AppError {
	return &AppError{
		Type:       UnknownCityError,
		Message:    "Unknown city",
		Detail:     fmt.Sprintf("%q is not in the city catalog", name),
		HTTPStatus: http.StatusBadRequest,
	}
}

// CityNotFound flags a city that has no record in the trip document.
func CityNotFound(name string) *AppError {
	return &AppError{
		Type:       CityNotFoundError,
		Message:    "City has no itinerary data",
		Detail:     fmt.Sprintf("City: %s", name),
		HTTPStatus: http.StatusNotFound,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError, UnknownCityError:
		return http.StatusBadRequest
	case NotFoundError, CityNotFoundError:
		return http.StatusNotFound
	case StoreError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
