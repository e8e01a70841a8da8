package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error with user-friendly and technical details.
type AppError struct {
	TechnicalMessage string
	UserMessage      string
	Code             string
	HTTPStatus       int
	OriginalError    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.UserMessage, e.OriginalError)
}

// Unwrap returns the original error for error chaining.
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// NewAppError creates a new AppError instance.
func NewAppError(technicalMessage, userMessage, code string, status int, originalErr error) *AppError {
	return &AppError{
		TechnicalMessage: technicalMessage,
		UserMessage:      userMessage,
		Code:             code,
		HTTPStatus:       status,
		OriginalError:    originalErr,
	}
}

// Domain failures. Only ErrGeocodeFailure aborts feature building; the model and
// validation errors are raised at the prediction and request boundaries.
var (
	ErrGeocodeFailure    = stderrors.New("address could not be geocoded")
	ErrModelPrediction   = stderrors.New("price model prediction failed")
	ErrInvalidListing    = stderrors.New("invalid listing input")
	ErrInvalidCoordinate = stderrors.New("invalid coordinate")
)

// Common error codes
const (
	ErrCodeGeocodeFailed      = "GEOCODE_FAILED"
	ErrCodePredictionFailed   = "PREDICTION_FAILED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInvalidParameters  = "INVALID_PARAMETERS"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
