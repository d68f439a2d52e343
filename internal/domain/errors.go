package domain

import "errors"

// ErrNotFound is returned by a Geocoder when the search matched nothing.
var ErrNotFound = errors.New("no matching location")

// User-facing lookup messages.
const (
	MsgEmptyQuery       = "Please enter a city name"
	MsgCityNotFound     = "City not found. Please check the spelling and try again."
	MsgGeocodeFailed    = "Failed to find city location"
	MsgForecastFailed   = "Failed to fetch weather data"
	MsgInvalidLatitude  = "Latitude must be a number between -90 and 90"
	MsgInvalidLongitude = "Longitude must be a number between -180 and 180"
)

// ErrorKind classifies a LookupError.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1 // rejected locally, no network call made
	KindNotFound                        // geocoder matched nothing
	KindNetwork                         // upstream transport failure or non-2xx status
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// LookupError is the single user-facing failure of a lookup. Error returns
// Message verbatim so it can be displayed as-is.
type LookupError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LookupError) Error() string { return e.Message }

func (e *LookupError) Unwrap() error { return e.Err }

// ValidationError reports input rejected before any network call.
func ValidationError(msg string) *LookupError {
	return &LookupError{Kind: KindValidation, Message: msg}
}

// NotFoundError reports a well-formed geocoding response with no matches.
func NotFoundError(err error) *LookupError {
	return &LookupError{Kind: KindNotFound, Message: MsgCityNotFound, Err: err}
}

// NetworkError reports an upstream failure with the stage's message.
func NetworkError(msg string, err error) *LookupError {
	return &LookupError{Kind: KindNetwork, Message: msg, Err: err}
}

// KindOf returns the ErrorKind of err, or 0 if err is not a LookupError.
func KindOf(err error) ErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}
