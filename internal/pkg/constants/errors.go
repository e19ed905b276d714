package constants

import "net/http"

type CodedError struct {
	msg  string
	code int
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{msg: msg, code: code}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrBadRequest   = NewCodedError("bad request", http.StatusBadRequest)
	ErrUnauthorized = NewCodedError("unauthorized", http.StatusUnauthorized)
	ErrDBNotFound   = NewCodedError("not found", http.StatusNotFound)

	// ErrSchema: a required input column is absent.
	ErrSchema = NewCodedError("schema error", http.StatusUnprocessableEntity)
	// ErrMalformedValue: an amount or year cell cannot be parsed.
	ErrMalformedValue = NewCodedError("malformed value", http.StatusUnprocessableEntity)
	// ErrRatioOutOfRange: distributed/collected is above every bucket.
	ErrRatioOutOfRange = NewCodedError("ratio out of range", http.StatusUnprocessableEntity)

	ErrNetworkFetch      = NewCodedError("network fetch failed", http.StatusBadGateway)
	ErrCredentialMissing = NewCodedError("credential missing", http.StatusServiceUnavailable)
	ErrUnknownBackend    = NewCodedError("unknown chat backend", http.StatusBadRequest)
	ErrEmptyMessage      = NewCodedError("empty chat message", http.StatusBadRequest)
)
