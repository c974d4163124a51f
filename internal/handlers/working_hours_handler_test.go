package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	infraRepo "github.com/holistia-mx/availability-engine/internal/infra/repository"
	"github.com/holistia-mx/availability-engine/internal/middleware"
	"github.com/holistia-mx/availability-engine/internal/models"
	"github.com/holistia-mx/availability-engine/internal/reload"
)

// failingBus always errors on publish so the handler's degraded path can
// be observed.
type failingBus struct{}

func (failingBus) Publish(context.Context, uint) error { return errors.New("redis down") }
func (failingBus) Subscribe(func(uint))                {}

func setupWorkingHoursTest(t *testing.T, bus reload.Bus, log *zap.Logger) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	assert.NoError(t, db.AutoMigrate(&models.Provider{}))

	provider := models.Provider{Name: "Ana", Email: "ana@example.com", PasswordHash: "x",
		StartTime: "09:00", EndTime: "18:00"}
	provider.SetActiveWeekdays([]int{1, 2, 3, 4, 5})
	assert.NoError(t, db.Create(&provider).Error)

	h := NewWorkingHoursHandler(infraRepo.NewAvailabilityGormRepository(db), bus, log)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextProviderID, uint(1))
		c.Next()
	})
	r.GET("/me/working-hours", h.Get)
	r.PUT("/me/working-hours", h.Update)

	return r, db
}

func TestWorkingHoursUpdate(t *testing.T) {
	bus := reload.NewMemoryBus()
	var reloads int
	bus.Subscribe(func(uint) { reloads++ })

	r, db := setupWorkingHoursTest(t, bus, zap.NewNop())

	body := []byte(`{"days":[1,3,5],"start_time":"08:00","end_time":"16:00"}`)
	req := httptest.NewRequest(http.MethodPut, "/me/working-hours", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, reloads)

	var saved models.Provider
	assert.NoError(t, db.First(&saved, 1).Error)
	assert.Equal(t, "1,3,5", saved.WorkingDays)
	assert.Equal(t, "08:00", saved.StartTime)
	assert.Equal(t, "16:00", saved.EndTime)

	t.Run("get reflects the saved envelope", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me/working-hours", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"days":[1,3,5],"start_time":"08:00","end_time":"16:00"}`,
			w.Body.String())
	})

	t.Run("invalid weekday rejected", func(t *testing.T) {
		body := []byte(`{"days":[0,8],"start_time":"08:00","end_time":"16:00"}`)
		req := httptest.NewRequest(http.MethodPut, "/me/working-hours", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		body := []byte(`{"days":[1],"start_time":"18:00","end_time":"09:00"}`)
		req := httptest.NewRequest(http.MethodPut, "/me/working-hours", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWorkingHoursUpdate_PublishFailureIsLoggedNotFatal(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r, _ := setupWorkingHoursTest(t, failingBus{}, zap.New(core))

	body := []byte(`{"days":[1,2],"start_time":"10:00","end_time":"14:00"}`)
	req := httptest.NewRequest(http.MethodPut, "/me/working-hours", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The save committed; a dead reload channel only degrades freshness.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("working hours update: reload publish failed").Len())
}
