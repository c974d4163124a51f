package block

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/httperr"
	"github.com/holistia-mx/availability-engine/internal/reload"
)

type DeleteBlock struct {
	repo domain.Repository
	bus  reload.Bus
	log  *zap.Logger
}

func NewDeleteBlock(
	repo domain.Repository,
	bus reload.Bus,
	log *zap.Logger,
) *DeleteBlock {
	return &DeleteBlock{
		repo: repo,
		bus:  bus,
		log:  log,
	}
}

func (uc *DeleteBlock) Execute(
	ctx context.Context,
	providerID uint,
	blockID uint,
) error {

	b, err := uc.repo.GetBlock(ctx, providerID, blockID)
	if err != nil {
		return err
	}

	// Only the sync bridge may remove its own mirrored rows.
	if b.ExternalTagged() {
		return httperr.ErrBusiness("external_block_readonly")
	}

	if err := uc.repo.DeleteBlock(ctx, providerID, blockID); err != nil {
		return err
	}

	if err := uc.bus.Publish(ctx, providerID); err != nil {
		uc.log.Warn("block delete: reload publish failed", zap.Error(err))
	}

	return nil
}
