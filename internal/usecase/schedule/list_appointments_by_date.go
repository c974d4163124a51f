package schedule

import (
	"context"

	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/models"
)

// Appointments are booked elsewhere; this is the read-only collaborator
// surface the engine consumes.
type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	providerID uint,
	date string,
) ([]models.Appointment, error) {

	if _, err := uc.repo.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}

	return uc.repo.ListAppointmentsForRange(ctx, providerID, date, date)
}
