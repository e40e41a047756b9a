package errors

import (
	stderrors "errors"
	"net/http"
)

const (
	HttpInternalError       = "internal_error"
	HttpInvalidJsonError    = "invalid_json"
	HttpInvalidRequestError = "invalid_request"
	HttpNotFoundError       = "not_found"
	HttpConflictError       = "conflict"
	HttpStoreUnavailable    = "store_unavailable"
)

// ErrorResponse is the error response body for every API error.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Kind classifies a failure so callers can map it without inspecting messages.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindInvalid          Kind = "invalid"
	KindStoreUnavailable Kind = "store_unavailable"
	KindUnknown          Kind = "unknown"
)

// Failure is the outcome returned by service operations that did not succeed.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return string(f.Kind) + ": " + f.Message + ": " + f.Err.Error()
	}
	return string(f.Kind) + ": " + f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

func NotFound(msg string) *Failure { return &Failure{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Failure { return &Failure{Kind: KindConflict, Message: msg} }
func Invalid(msg string) *Failure  { return &Failure{Kind: KindInvalid, Message: msg} }

// Transient reports a durable store I/O failure or timeout.
func Transient(msg string, err error) *Failure {
	return &Failure{Kind: KindStoreUnavailable, Message: msg, Err: err}
}

func Unknown(msg string, err error) *Failure {
	return &Failure{Kind: KindUnknown, Message: msg, Err: err}
}

// KindOf returns the kind of the first Failure in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var f *Failure
	if stderrors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}

// HTTPStatus maps a failure kind to a response status and error type.
func HTTPStatus(kind Kind) (int, string) {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound, HttpNotFoundError
	case KindConflict:
		return http.StatusConflict, HttpConflictError
	case KindInvalid:
		return http.StatusBadRequest, HttpInvalidRequestError
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable, HttpStoreUnavailable
	default:
		return http.StatusInternalServerError, HttpInternalError
	}
}

// Response builds the error body for err, using the Failure message when present.
func Response(err error) (int, ErrorResponse) {
	var f *Failure
	if !stderrors.As(err, &f) {
		status, typ := HTTPStatus(KindUnknown)
		return status, ErrorResponse{ErrorType: typ, Message: "internal error"}
	}
	status, typ := HTTPStatus(f.Kind)
	return status, ErrorResponse{ErrorType: typ, Message: f.Message}
}
