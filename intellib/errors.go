package intellib

import (
	"context"
	"errors"
	"net"
	"strconv"
)

// ErrorKind classifies a failed provider call. All kinds are
// provider-local and non-fatal to the lookup which contains them.
type ErrorKind string

const (
	// Provider did not answer within its time budget.
	ErrorKindTimeout ErrorKind = "timeout"

	// Connection-level failure: DNS, refused connection, reset.
	ErrorKindTransport ErrorKind = "transport-error"

	// Provider answered with a non-2xx status code.
	ErrorKindHTTP ErrorKind = "http-error"

	// Provider answered but the body was not in the expected shape.
	ErrorKindParse ErrorKind = "parse-error"

	// Provider is missing a required credential and was never called.
	ErrorKindDisabled ErrorKind = "disabled"
)

var (
	ErrAggregatorShutdown = errors.New("aggregator instance was shutdown")
	ErrContextIsClosed    = errors.New("context is closed")
)

// LookupError carries an explicit classification for a failed provider
// call. Providers return it when they know better than a generic
// inspection of the wrapped error chain.
type LookupError struct {
	Kind ErrorKind
	Err  error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}

	return string(e.Kind)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func NewLookupError(kind ErrorKind, err error) *LookupError {
	return &LookupError{
		Kind: kind,
		Err:  err,
	}
}

// StatusError preserves a non-2xx status code for diagnostics. It never
// reaches the canonical schema.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + strconv.Itoa(e.StatusCode)
}

// KindOf maps an error returned by a provider call into its ErrorKind.
// A budget violation wins over everything else: a transport or parse
// error caused by an expired deadline is still a timeout.
func KindOf(err error) ErrorKind {
	var lookupErr *LookupError

	var statusErr *StatusError

	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorKindTimeout
	case errors.As(err, &lookupErr):
		return lookupErr.Kind
	case errors.As(err, &statusErr):
		return ErrorKindHTTP
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrorKindTimeout
	}

	return ErrorKindTransport
}
