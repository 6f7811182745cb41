package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrEventNotFound         = errors.New("event wasn't found")
	ErrUserNotFound          = errors.New("no user found with given id")
	ErrMissingCredentials    = errors.New("authorization header not found")
	ErrInvalidToken          = errors.New("invalid token")
	ErrValidationUnavailable = errors.New("token validation unavailable")
)

// ConnectionError reports that the remote API could not be reached.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RemoteError carries a non-success answer of the remote API.
// Code and Message come from the WordPress error envelope when the body had one,
// otherwise Message holds the raw body.
type RemoteError struct {
	Status  int
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote responded %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("remote responded %d: %s", e.Status, e.Message)
}

// DecodeError signals a payload that does not match the expected remote shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response of %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SyncError names the event whose upsert aborted a sync pass.
// Events stored before it stay stored.
type SyncError struct {
	EventID int64
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync aborted at event %d: %v", e.EventID, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Code returns a stable machine-readable code for err, or "" when err is not a domain error.
func Code(err error) string {
	var (
		connErr   *ConnectionError
		remoteErr *RemoteError
		decodeErr *DecodeError
		syncErr   *SyncError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrValidationUnavailable):
		return "validation_unavailable"
	case errors.As(err, &syncErr):
		return "sync_failed"
	case errors.As(err, &connErr):
		return "remote_unreachable"
	case errors.As(err, &remoteErr):
		return "remote_error"
	case errors.As(err, &decodeErr):
		return "remote_decode"
	default:
		return ""
	}
}
