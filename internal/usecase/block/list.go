package block

import (
	"context"

	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/models"
)

type ListBlocks struct {
	repo domain.Repository
}

func NewListBlocks(repo domain.Repository) *ListBlocks {
	return &ListBlocks{repo: repo}
}

func (uc *ListBlocks) Execute(
	ctx context.Context,
	providerID uint,
) ([]models.AvailabilityBlock, error) {

	if _, err := uc.repo.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}

	return uc.repo.ListBlocks(ctx, providerID)
}
