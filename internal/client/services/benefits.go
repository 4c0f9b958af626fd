package services

import (
	"context"
	"sort"

	"github.com/collectivehq/collective/internal/client/access"
	"github.com/collectivehq/collective/internal/client/api"
	"github.com/collectivehq/collective/internal/client/models"
	"github.com/collectivehq/collective/internal/client/session"
)

type BenefitService struct {
	client   api.Client
	sessions *session.Store
}

func NewBenefitService(client api.Client, sessions *session.Store) *BenefitService {
	return &BenefitService{client: client, sessions: sessions}
}

// Visible lists benefits the member's tier unlocks, sorted by title.
func (b *BenefitService) Visible(ctx context.Context) ([]models.Benefit, error) {
	all, err := b.client.Benefits(ctx)
	if err != nil {
		return nil, err
	}

	visible := access.FilterVisible(b.sessions.Current(), all)
	sort.Slice(visible, func(i, j int) bool { return visible[i].Title < visible[j].Title })
	return visible, nil
}

func (b *BenefitService) Redeem(ctx context.Context, benefitID string) error {
	return b.client.RedeemBenefit(ctx, benefitID)
}
