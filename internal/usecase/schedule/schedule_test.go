package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/httperr"
	infraRepo "github.com/holistia-mx/availability-engine/internal/infra/repository"
	"github.com/holistia-mx/availability-engine/internal/models"
	ucSchedule "github.com/holistia-mx/availability-engine/internal/usecase/schedule"
)

func setupScheduleTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	assert.NoError(t, db.AutoMigrate(
		&models.Provider{},
		&models.AvailabilityBlock{},
		&models.Appointment{},
		&models.CalendarConnection{},
	))

	provider := models.Provider{Name: "Ana", Email: "ana@example.com", PasswordHash: "x",
		StartTime: "09:00", EndTime: "18:00"}
	provider.SetActiveWeekdays([]int{1, 2, 3, 4, 5})
	assert.NoError(t, db.Create(&provider).Error)

	return db
}

func TestGetWeekGrid(t *testing.T) {
	db := setupScheduleTestDB(t)
	repo := infraRepo.NewAvailabilityGormRepository(db)
	uc := ucSchedule.NewGetWeekGrid(repo, zap.NewNop())

	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // Monday

	assert.NoError(t, db.Create(&models.Appointment{
		ProviderID: 1, Date: "2025-06-03", Time: "10:00",
		Status: models.AppointmentScheduled,
	}).Error)
	assert.NoError(t, db.Create(&models.AvailabilityBlock{
		ProviderID: 1, Title: "Day off", BlockType: models.BlockTypeFullDay,
		StartDate: "2025-06-04", EndDate: "2025-06-04",
	}).Error)

	t.Run("merges stored state into the grid", func(t *testing.T) {
		grid, err := uc.Execute(context.Background(), 1, weekStart)
		assert.NoError(t, err)
		assert.Len(t, grid.Days, 7)

		tue := grid.Days[1]
		var at10 availability.SlotStatus
		for _, s := range tue.Slots {
			if s.Time == "10:00" {
				at10 = s.Status
			}
		}
		assert.Equal(t, availability.StatusOccupied, at10)

		for _, s := range grid.Days[2].Slots {
			assert.Equal(t, availability.StatusBlocked, s.Status)
		}
	})

	t.Run("malformed stored block does not abort the week", func(t *testing.T) {
		assert.NoError(t, db.Create(&models.AvailabilityBlock{
			ProviderID: 1, Title: "broken", BlockType: models.BlockTypeWeeklyRange,
			StartDate: "2025-06-02", EndDate: "2025-06-06",
		}).Error)

		grid, err := uc.Execute(context.Background(), 1, weekStart)
		assert.NoError(t, err)
		assert.Len(t, grid.Days, 7)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), 99, weekStart)
		assert.True(t, httperr.IsNotFound(err))
	})
}

func TestListAppointmentsByDate(t *testing.T) {
	db := setupScheduleTestDB(t)
	repo := infraRepo.NewAvailabilityGormRepository(db)
	uc := ucSchedule.NewListAppointmentsByDate(repo)

	assert.NoError(t, db.Create(&models.Appointment{
		ProviderID: 1, Date: "2025-06-03", Time: "10:00",
		Status: models.AppointmentScheduled,
	}).Error)
	assert.NoError(t, db.Create(&models.Appointment{
		ProviderID: 1, Date: "2025-06-04", Time: "11:00",
		Status: models.AppointmentScheduled,
	}).Error)

	apps, err := uc.Execute(context.Background(), 1, "2025-06-03")
	assert.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, "10:00", apps[0].Time)

	t.Run("unknown provider", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), 42, "2025-06-03")
		assert.True(t, httperr.IsNotFound(err))
	})
}
