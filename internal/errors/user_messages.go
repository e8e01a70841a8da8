package errors

// User-friendly error messages
const (
	MsgGeocodeFailed      = "We couldn't find that address. Please check the street name and number and try again."
	MsgPredictionFailed   = "We're unable to estimate a price right now. Please try again in a few minutes."
	MsgServiceUnavailable = "The service is temporarily unavailable. Please try again in a few minutes."
	MsgRateLimited        = "You're sending requests too quickly! Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
