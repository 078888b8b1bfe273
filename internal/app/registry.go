package app

import (
	"database/sql"

	"github.com/Sultann121/hazori/internal/attendance"
	"github.com/Sultann121/hazori/internal/gate"
	"github.com/Sultann121/hazori/internal/messaging/kafka"
	"github.com/Sultann121/hazori/internal/report"
	"github.com/Sultann121/hazori/internal/trainer"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg Config,
) error {
	// --- Repositories ---
	trainerRepo := trainer.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	gateRepo := gate.NewRepository(gormDB)
	reportRepo := report.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	gateService := gate.NewService(gateRepo, cfg.AdminCode)
	trainerService := trainer.NewService(trainerRepo)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, trainerRepo, gateService, cfg.Fence, outboxRepo)
	reportService := report.NewService(reportRepo, rdb)

	// --- Handlers ---
	gateHandler := gate.NewHandler(gateService)
	trainerHandler := trainer.NewHandler(trainerService)
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		gate.RegisterRoutes(api, gateHandler)
		trainer.RegisterRoutes(api, trainerHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		report.RegisterRoutes(api, reportHandler)
	}

	return nil
}
