package api

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthExpired means the access token was rejected and the one allowed
	// refresh-and-retry did not help. Never retried again.
	ErrAuthExpired = errors.New("authorization expired")

	// ErrRefreshFailed means the refresh token is absent, invalid or expired.
	// Terminal: the client forces a logout when it sees this.
	ErrRefreshFailed = errors.New("session refresh failed")

	// ErrNetwork is a transient connectivity failure. The client does not
	// retry on its own; callers decide.
	ErrNetwork = errors.New("server unreachable")

	// ErrServer covers 5xx responses.
	ErrServer = errors.New("server error")
)

// ValidationError is a non-401 4xx response. The body is surfaced verbatim;
// the client does not interpret field-level validation content.
type ValidationError struct {
	Status int
	Body   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Body)
}
