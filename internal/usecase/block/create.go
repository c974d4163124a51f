package block

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/mirror"
	"github.com/holistia-mx/availability-engine/internal/models"
	"github.com/holistia-mx/availability-engine/internal/reload"
)

type CreateBlock struct {
	repo   domain.Repository
	mirror *mirror.Dispatcher
	bus    reload.Bus
	log    *zap.Logger
}

func NewCreateBlock(
	repo domain.Repository,
	mirrorDispatcher *mirror.Dispatcher,
	bus reload.Bus,
	log *zap.Logger,
) *CreateBlock {
	return &CreateBlock{
		repo:   repo,
		mirror: mirrorDispatcher,
		bus:    bus,
		log:    log,
	}
}

func (uc *CreateBlock) Execute(
	ctx context.Context,
	providerID uint,
	in Input,
) (*models.AvailabilityBlock, error) {

	if _, err := uc.repo.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}

	b := &models.AvailabilityBlock{ProviderID: providerID}
	in.apply(b)

	if err := domain.ValidateBlock(b); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateBlock(ctx, b); err != nil {
		return nil, err
	}

	// Local commit first; the external mirror is a background task whose
	// failure never reaches this caller.
	uc.mirror.Dispatch(*b)

	if err := uc.bus.Publish(ctx, providerID); err != nil {
		uc.log.Warn("block create: reload publish failed", zap.Error(err))
	}

	return b, nil
}
