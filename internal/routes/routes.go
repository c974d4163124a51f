package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/holistia-mx/availability-engine/internal/bridge"
	"github.com/holistia-mx/availability-engine/internal/cache"
	"github.com/holistia-mx/availability-engine/internal/config"
	"github.com/holistia-mx/availability-engine/internal/handlers"
	"github.com/holistia-mx/availability-engine/internal/infra/googlecal"
	infraRepo "github.com/holistia-mx/availability-engine/internal/infra/repository"
	"github.com/holistia-mx/availability-engine/internal/middleware"
	"github.com/holistia-mx/availability-engine/internal/mirror"
	"github.com/holistia-mx/availability-engine/internal/reload"
	"github.com/holistia-mx/availability-engine/internal/synclock"
	ucBlock "github.com/holistia-mx/availability-engine/internal/usecase/block"
	ucSchedule "github.com/holistia-mx/availability-engine/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewAvailabilityGormRepository(db)

	bus := reload.NewRedisBus(rdb, log)
	locker := synclock.NewRedisLocker(rdb)
	calClient := googlecal.New(cfg)

	calendarBridge := bridge.New(
		repo,
		calClient,
		locker,
		bus,
		log,
		cfg.SyncWindowDays,
		cfg.CalendarTimeout,
	)

	mirrorDispatcher := mirror.NewDispatcher(calendarBridge, log)

	// ======================================================
	// USE CASES
	// ======================================================
	createBlockUC := ucBlock.NewCreateBlock(repo, mirrorDispatcher, bus, log)
	updateBlockUC := ucBlock.NewUpdateBlock(repo, mirrorDispatcher, bus, log)
	deleteBlockUC := ucBlock.NewDeleteBlock(repo, bus, log)
	listBlocksUC := ucBlock.NewListBlocks(repo)

	getWeekGridUC := ucSchedule.NewGetWeekGrid(repo, log)
	listAppointmentsUC := ucSchedule.NewListAppointmentsByDate(repo)

	gridCache := cache.New(getWeekGridUC, log)
	bus.Subscribe(func(uint) {
		gridCache.InvalidateAll()
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	workingHoursHandler := handlers.NewWorkingHoursHandler(repo, bus, log)

	blockHandler := handlers.NewBlockHandler(
		createBlockUC,
		updateBlockUC,
		deleteBlockUC,
		listBlocksUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(gridCache)
	appointmentHandler := handlers.NewAppointmentHandler(listAppointmentsUC)
	syncHandler := handlers.NewSyncHandler(calendarBridge)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/blocks", blockHandler.List)
			secured.POST("/me/blocks", blockHandler.Create)
			secured.PATCH("/me/blocks/:id", blockHandler.Update)
			secured.DELETE("/me/blocks/:id", blockHandler.Delete)

			secured.GET("/me/availability", availabilityHandler.GetWeek)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)

			secured.GET("/me/calendar/diagnose", syncHandler.Diagnose)
			secured.POST("/me/calendar/force-sync", syncHandler.ForceSync)
			secured.POST("/me/calendar/clean-duplicates", syncHandler.CleanDuplicates)
		}
	}
}
