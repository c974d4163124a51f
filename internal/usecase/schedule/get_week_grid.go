package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
)

type GetWeekGrid struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewGetWeekGrid(repo domain.Repository, log *zap.Logger) *GetWeekGrid {
	return &GetWeekGrid{repo: repo, log: log}
}

// Execute loads the provider's envelope, blocks and appointments for the
// week and runs the pure slot computation. Malformed stored blocks surface
// as warnings in the log, never as a failed week.
func (uc *GetWeekGrid) Execute(
	ctx context.Context,
	providerID uint,
	weekStart time.Time,
) (*domain.SlotGrid, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	weekStart = domain.CanonicalWeekStart(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	blocks, err := uc.repo.ListBlocks(ctx, providerID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForRange(
		ctx,
		providerID,
		weekStart.Format(domain.DateLayout),
		weekEnd.Format(domain.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	grid, warnings := domain.ComputeWeekGrid(provider, blocks, appointments, weekStart)

	for _, w := range warnings {
		uc.log.Warn("data integrity: skipped malformed block",
			zap.Uint("provider_id", providerID),
			zap.Uint("block_id", w.BlockID),
			zap.String("reason", w.Reason))
	}

	return grid, nil
}

// FetchWeek lets the cache service use this usecase as its loader.
func (uc *GetWeekGrid) FetchWeek(
	ctx context.Context,
	providerID uint,
	weekStart time.Time,
) (*domain.SlotGrid, error) {
	return uc.Execute(ctx, providerID, weekStart)
}
