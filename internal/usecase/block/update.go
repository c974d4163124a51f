package block

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/httperr"
	"github.com/holistia-mx/availability-engine/internal/mirror"
	"github.com/holistia-mx/availability-engine/internal/models"
	"github.com/holistia-mx/availability-engine/internal/reload"
)

type UpdateBlock struct {
	repo   domain.Repository
	mirror *mirror.Dispatcher
	bus    reload.Bus
	log    *zap.Logger
}

func NewUpdateBlock(
	repo domain.Repository,
	mirrorDispatcher *mirror.Dispatcher,
	bus reload.Bus,
	log *zap.Logger,
) *UpdateBlock {
	return &UpdateBlock{
		repo:   repo,
		mirror: mirrorDispatcher,
		bus:    bus,
		log:    log,
	}
}

func (uc *UpdateBlock) Execute(
	ctx context.Context,
	providerID uint,
	blockID uint,
	in Input,
) (*models.AvailabilityBlock, error) {

	b, err := uc.repo.GetBlock(ctx, providerID, blockID)
	if err != nil {
		return nil, err
	}

	// Bridge-owned rows mirror upstream state; editing them locally would
	// be overwritten by the next sync.
	if b.ExternalTagged() {
		return nil, httperr.ErrBusiness("external_block_readonly")
	}

	in.apply(b)

	if err := domain.ValidateBlock(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBlock(ctx, b); err != nil {
		return nil, err
	}

	uc.mirror.Dispatch(*b)

	if err := uc.bus.Publish(ctx, providerID); err != nil {
		uc.log.Warn("block update: reload publish failed", zap.Error(err))
	}

	return b, nil
}
