package bridge

import (
	"context"

	"github.com/holistia-mx/availability-engine/internal/models"
)

type Repository interface {
	// GetConnection returns nil without error when the provider has no
	// linked calendar.
	GetConnection(
		ctx context.Context,
		providerID uint,
	) (*models.CalendarConnection, error)

	ListBlocks(
		ctx context.Context,
		providerID uint,
	) ([]models.AvailabilityBlock, error)

	CreateBlock(
		ctx context.Context,
		b *models.AvailabilityBlock,
	) error

	// DeleteBlocksByID removes bridge-owned blocks by primary key.
	DeleteBlocksByID(
		ctx context.Context,
		providerID uint,
		ids []uint,
	) (int, error)
}
