package client

import (
	"errors"
	"fmt"
	"net/http"

	cerrdefs "github.com/containerd/errdefs"
)

// errConnectionFailed implements an error returned when connection failed.
type errConnectionFailed struct {
	error
}

// Error returns a string representation of an errConnectionFailed
func (e errConnectionFailed) Error() string {
	return e.error.Error()
}

func (e errConnectionFailed) Unwrap() error {
	return e.error
}

// Unavailable marks the error as a connectivity failure.
func (errConnectionFailed) Unavailable() {}

// IsErrConnectionFailed returns true if the error is caused by connection failed.
func IsErrConnectionFailed(err error) bool {
	return errors.As(err, &errConnectionFailed{})
}

// connectionFailed returns an error with host in the error message when connection
// to Marathon failed.
func connectionFailed(host string) error {
	return errConnectionFailed{error: fmt.Errorf("cannot connect to Marathon at %s. Is the server running?", host)}
}

// StatusError is returned when Marathon responds with a status code that is
// not a success. It unwraps to the errdefs class of the status code, so
// that, for example, [github.com/containerd/errdefs.IsNotFound] reports true
// for a 404 response.
type StatusError struct {
	StatusCode int
	URL        string
	Message    string
}

func newStatusError(statusCode int, reqURL, message string) *StatusError {
	return &StatusError{StatusCode: statusCode, URL: reqURL, Message: message}
}

func (e *StatusError) Error() string {
	status := fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	switch {
	case e.Message != "":
		return fmt.Sprintf("Marathon returned status code %s: %s", status, e.Message)
	case e.URL != "":
		return fmt.Sprintf("Marathon returned status code %s for %s", status, e.URL)
	default:
		return "Marathon returned status code " + status
	}
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return cerrdefs.ErrInvalidArgument
	case http.StatusUnauthorized:
		return cerrdefs.ErrUnauthenticated
	case http.StatusForbidden:
		return cerrdefs.ErrPermissionDenied
	case http.StatusNotFound:
		return cerrdefs.ErrNotFound
	case http.StatusConflict:
		return cerrdefs.ErrConflict
	case http.StatusPreconditionFailed:
		return cerrdefs.ErrFailedPrecondition
	case http.StatusTooManyRequests:
		return cerrdefs.ErrResourceExhausted
	case http.StatusNotImplemented:
		return cerrdefs.ErrNotImplemented
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return cerrdefs.ErrUnavailable
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return cerrdefs.ErrInternal
	}
	return cerrdefs.ErrUnknown
}

// StatusCode returns the HTTP status code of err, or 0 if err was not
// caused by an HTTP response.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

type errInvalidResponse struct {
	msg string
}

func (e errInvalidResponse) Error() string {
	return "invalid response from Marathon: " + e.msg
}

// System marks the error as a server-side failure.
func (errInvalidResponse) System() {}

func invalidResponse(msg string) error {
	return errInvalidResponse{msg: msg}
}
