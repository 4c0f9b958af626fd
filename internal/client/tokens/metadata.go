package tokens

import (
	"context"

	"github.com/collectivehq/collective/internal/client/repositories/metadata"
)

// MetadataStore keeps the token pair in the client's durable key/value
// repository, so tokens survive restarts.
type MetadataStore struct {
	repo metadata.Repository
}

func NewMetadataStore(repo metadata.Repository) *MetadataStore {
	return &MetadataStore{repo: repo}
}

func (s *MetadataStore) Get(ctx context.Context, kind Kind) (string, error) {
	v, err := s.repo.Get(ctx, string(kind))
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *MetadataStore) Set(ctx context.Context, kind Kind, value string) error {
	return s.repo.Set(ctx, string(kind), []byte(value))
}

func (s *MetadataStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, string(Access)); err != nil {
		return err
	}
	return s.repo.Delete(ctx, string(Refresh))
}
