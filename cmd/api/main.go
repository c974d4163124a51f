package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/holistia-mx/availability-engine/internal/config"
	dbpkg "github.com/holistia-mx/availability-engine/internal/db"
	"github.com/holistia-mx/availability-engine/internal/jobs"
	"github.com/holistia-mx/availability-engine/internal/logger"
	"github.com/holistia-mx/availability-engine/internal/routes"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()
	log := logger.New()
	defer log.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	purgeCron := jobs.Start(db, log)
	defer purgeCron.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
