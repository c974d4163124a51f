package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/models"
)

// Blocks whose whole span ended this long ago are dead weight: no grid
// request can ever reach them.
const purgeAfterDays = 90

// Start schedules the nightly block purge.
func Start(db *gorm.DB, log *zap.Logger) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		PurgeExpiredBlocks(db, log)
	})
	if err != nil {
		log.Error("failed to schedule block purge", zap.Error(err))
		return c
	}

	c.Start()
	return c
}

func PurgeExpiredBlocks(db *gorm.DB, log *zap.Logger) {
	cutoff := time.Now().AddDate(0, 0, -purgeAfterDays).Format(availability.DateLayout)

	res := db.Where("end_date < ?", cutoff).Delete(&models.AvailabilityBlock{})
	if res.Error != nil {
		log.Error("block purge failed", zap.Error(res.Error))
		return
	}

	if res.RowsAffected > 0 {
		log.Info("purged expired blocks",
			zap.Int64("count", res.RowsAffected),
			zap.String("cutoff", cutoff))
	}
}
