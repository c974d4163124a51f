package mirror

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/holistia-mx/availability-engine/internal/models"
)

// Mirrorer pushes one block onto the provider's external calendar.
type Mirrorer interface {
	Mirror(ctx context.Context, b *models.AvailabilityBlock) error
}

// Dispatcher decouples block writes from their external mirror: the local
// commit already happened, mirroring is a background reconciliation task
// whose failure never reaches the caller.
type Dispatcher struct {
	mirrorer Mirrorer
	queue    chan models.AvailabilityBlock
	log      *zap.Logger
}

func NewDispatcher(mirrorer Mirrorer, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		mirrorer: mirrorer,
		queue:    make(chan models.AvailabilityBlock, 100),
		log:      log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for blk := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := d.mirrorer.Mirror(ctx, &blk); err != nil {
			d.log.Error("mirror failed",
				zap.Uint("block_id", blk.ID),
				zap.Uint("provider_id", blk.ProviderID),
				zap.Error(err))
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(blk models.AvailabilityBlock) {
	select {
	case d.queue <- blk:
	default:
		// queue full: drop rather than block the write path
		d.log.Warn("mirror queue full, dropping task",
			zap.Uint("block_id", blk.ID))
	}
}
