// Package tokens holds the bearer credential pair. The store does no
// validation and no expiry checking; an expired access token is discovered
// reactively through a 401 from the backend.
package tokens

import "context"

// Kind selects which credential a Store operation refers to.
type Kind string

const (
	Access  Kind = "access_token"
	Refresh Kind = "refresh_token"
)

// Store persists the token pair. Get returns an empty string for an absent
// token; an absent access token means protected requests go out
// unauthenticated.
type Store interface {
	Get(ctx context.Context, kind Kind) (string, error)
	Set(ctx context.Context, kind Kind, value string) error
	Clear(ctx context.Context) error
}
