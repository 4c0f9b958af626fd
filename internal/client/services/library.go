package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/session"
)

type LibraryService struct {
	client   api.Client
	sessions *session.Store
}

func NewLibraryService(client api.Client, sessions *session.Store) *LibraryService {
	return &LibraryService{client: client, sessions: sessions}
}

// Visible lists library content the member may open, sorted by title.
func (l *LibraryService) Visible(ctx context.Context) ([]models.ContentItem, error) {
	all, err := l.client.Library(ctx)
	if err != nil {
		return nil, err
	}

	visible := access.FilterVisible(l.sessions.Current(), all)
	sort.Slice(visible, func(i, j int) bool { return visible[i].Title < visible[j].Title })
	return visible, nil
}

// SetProgress records course progress as a 0-100 percentage.
func (l *LibraryService) SetProgress(ctx context.Context, contentID string, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", percent)
	}
	return l.client.SetProgress(ctx, contentID, percent)
}
