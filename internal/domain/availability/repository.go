package availability

import (
	"context"

	"github.com/holistia-mx/availability-engine/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProvider(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	UpdateProvider(
		ctx context.Context,
		p *models.Provider,
	) error

	// -------- Blocks --------
	ListBlocks(
		ctx context.Context,
		providerID uint,
	) ([]models.AvailabilityBlock, error)

	GetBlock(
		ctx context.Context,
		providerID uint,
		blockID uint,
	) (*models.AvailabilityBlock, error)

	CreateBlock(
		ctx context.Context,
		b *models.AvailabilityBlock,
	) error

	UpdateBlock(
		ctx context.Context,
		b *models.AvailabilityBlock,
	) error

	DeleteBlock(
		ctx context.Context,
		providerID uint,
		blockID uint,
	) error

	// -------- Appointments (read-only collaborator) --------
	ListAppointmentsForRange(
		ctx context.Context,
		providerID uint,
		startDate string,
		endDate string,
	) ([]models.Appointment, error)
}
