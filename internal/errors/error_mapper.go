package errors

import (
	stderrors "errors"
	"net/http"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case stderrors.Is(err, ErrGeocodeFailure):
		return NewAppError(technicalMessage, MsgGeocodeFailed, ErrCodeGeocodeFailed, http.StatusUnprocessableEntity, err)
	case stderrors.Is(err, ErrModelPrediction):
		return NewAppError(technicalMessage, MsgPredictionFailed, ErrCodePredictionFailed, http.StatusBadGateway, err)
	case stderrors.Is(err, ErrInvalidListing), stderrors.Is(err, ErrInvalidCoordinate):
		return NewAppError(technicalMessage, MsgInvalidParameters, ErrCodeInvalidParameters, http.StatusBadRequest, err)
	default:
		return NewAppError(technicalMessage, MsgInternalError, ErrCodeInternal, http.StatusInternalServerError, err)
	}
}
