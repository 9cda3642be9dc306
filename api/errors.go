package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cocov-ci/actions/timestamp"
)

// ErrorKind identifies where a failure originated.
type ErrorKind int

const (
	// KindTransport covers connection failures, non-2xx responses and
	// payloads that do not match the expected JSON shape.
	KindTransport ErrorKind = iota + 1

	// KindTimestampFormat indicates the server returned a timestamp that does
	// not follow timestamp.Layout.
	KindTimestampFormat
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimestampFormat:
		return "timestamp format"
	default:
		return "unknown"
	}
}

// Error is returned by every Client operation.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusError is the transport cause for responses outside the 2xx class.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

func transportError(op string, err error) error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// classify wraps err as either a timestamp or transport failure, depending
// on its cause.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}
	var fe *timestamp.FormatError
	if errors.As(err, &fe) {
		return &Error{Kind: KindTimestampFormat, Op: op, Err: err}
	}
	return transportError(op, err)
}

// KindOf returns the ErrorKind of err, or zero when err was not produced by
// this package.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func IsTransport(err error) bool { return KindOf(err) == KindTransport }

func IsTimestampFormat(err error) bool { return KindOf(err) == KindTimestampFormat }

// IsNotFound reports whether err carries a 404 response.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
