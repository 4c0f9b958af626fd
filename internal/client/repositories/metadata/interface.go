// Package metadata is the key/value repository backing the client's durable
// state: tokens, the serialized session blob and the revision counter.
package metadata

import "context"

// Repository is a durable per-key byte store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
