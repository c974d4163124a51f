package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/holistia-mx/availability-engine/internal/bridge"
	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/httperr"
	"github.com/holistia-mx/availability-engine/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetProvider(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var p models.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("provider")
		}
		return nil, err
	}
	return &p, nil
}

func (r *AvailabilityGormRepository) UpdateProvider(
	ctx context.Context,
	p *models.Provider,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListBlocks(
	ctx context.Context,
	providerID uint,
) ([]models.AvailabilityBlock, error) {

	var blocks []models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("start_date ASC, id ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}

	// Legacy weekly_day rows are normalized at the read boundary.
	for i := range blocks {
		blocks[i].Normalize()
	}
	return blocks, nil
}

func (r *AvailabilityGormRepository) GetBlock(
	ctx context.Context,
	providerID uint,
	blockID uint,
) (*models.AvailabilityBlock, error) {

	var b models.AvailabilityBlock
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", blockID, providerID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("block")
		}
		return nil, err
	}

	b.Normalize()
	return &b, nil
}

func (r *AvailabilityGormRepository) CreateBlock(
	ctx context.Context,
	b *models.AvailabilityBlock,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *AvailabilityGormRepository) UpdateBlock(
	ctx context.Context,
	b *models.AvailabilityBlock,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *AvailabilityGormRepository) DeleteBlock(
	ctx context.Context,
	providerID uint,
	blockID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", blockID, providerID).
		Delete(&models.AvailabilityBlock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("block")
	}
	return nil
}

func (r *AvailabilityGormRepository) DeleteBlocksByID(
	ctx context.Context,
	providerID uint,
	ids []uint,
) (int, error) {

	res := r.db.WithContext(ctx).
		Where("provider_id = ? AND id IN ?", providerID, ids).
		Delete(&models.AvailabilityBlock{})
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

// --------------------------------------------------
// Appointments (read-only collaborator)
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListAppointmentsForRange(
	ctx context.Context,
	providerID uint,
	startDate string,
	endDate string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND date >= ? AND date <= ?",
			providerID, startDate, endDate,
		).
		Order("date ASC, time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Calendar Connection
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetConnection(
	ctx context.Context,
	providerID uint,
) (*models.CalendarConnection, error) {

	var conn models.CalendarConnection
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

// Compile-time checks
var (
	_ domain.Repository = (*AvailabilityGormRepository)(nil)
	_ bridge.Repository = (*AvailabilityGormRepository)(nil)
)
