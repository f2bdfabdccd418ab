package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/intake/internal/app"
	"github.com/okian/intake/internal/adapters/repository"
	"github.com/okian/intake/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrBackpressure = errors.New("backpressure")
	ErrUnavailable  = errors.New("service unavailable")
	ErrTimeout      = errors.New("request timed out")
	ErrInternal     = errors.New("internal error")
)

// opError ties an underlying error to the operation that failed and the API
// kind it maps to.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	if e.err == nil {
		return e.op + ": " + e.kind.Error()
	}
	return e.op + ": " + e.err.Error()
}

func (e *opError) Unwrap() []error {
	if e.err == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.err}
}

// NewKind returns an error of the given kind with no further cause.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// WrapKind attaches op and kind to err.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// Wrap classifies an error coming from the form service.
func Wrap(op string, err error) error {
	switch {
	case errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrInvalidValue),
		errors.Is(err, service.ErrNotScalar),
		errors.Is(err, service.ErrUnknownEvent):
		return WrapKind(op, ErrBadRequest, err)
	case errors.Is(err, repository.ErrNotFound):
		return WrapKind(op, ErrNotFound, err)
	case errors.Is(err, service.ErrBackpressure):
		return WrapKind(op, ErrBackpressure, err)
	case errors.Is(err, service.ErrNotStarted):
		return WrapKind(op, ErrUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return WrapKind(op, ErrTimeout, err)
	default:
		return WrapKind(op, ErrInternal, err)
	}
}

// statusFor maps an error kind to its HTTP status and response code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
