package usecase

import "errors"

// The three terminal error kinds of the request workflows. Handlers map them
// to 404, 400 and 502 respectively; nothing is retried internally.

// ErrNotFound signals a missing entity. Ownership violations use the same
// error as nonexistence so callers cannot probe for other users' records.
type ErrNotFound string

func (e ErrNotFound) Error() string { return string(e) + " not found" }

// ErrInvalidState signals a business-rule violation with a human-readable
// reason (empty cart, insufficient stock, order not payable, failed capture).
type ErrInvalidState string

func (e ErrInvalidState) Error() string { return string(e) }

// ErrGateway signals that the external payment provider was unreachable or
// returned an unusable response.
type ErrGateway struct {
	Reason string
	Err    error
}

func (e *ErrGateway) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *ErrGateway) Unwrap() error { return e.Err }

// ErrUnauthorized and ErrForbidden cover the auth surface: bad credentials
// and missing privileges respectively.
type ErrUnauthorized string

func (e ErrUnauthorized) Error() string { return string(e) }

type ErrForbidden string

func (e ErrForbidden) Error() string { return string(e) }

func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

func IsInvalidState(err error) bool {
	var is ErrInvalidState
	return errors.As(err, &is)
}

func IsGateway(err error) bool {
	var ge *ErrGateway
	return errors.As(err, &ge)
}
