package app

import (
	"os"

	"go-timeclock/internal/authz"
	"go-timeclock/internal/clocking"
	"go-timeclock/internal/employee"
	"go-timeclock/internal/face"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/shared/connection"
	"go-timeclock/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	directoryDB *gorm.DB,
	rdb *redis.Client,
) error {
	sqlDB, err := directoryDB.DB()
	if err != nil {
		return err
	}

	// --- Tenant routing ---
	tenantRepo := tenant.NewRepository(directoryDB)
	tenantRouter := tenant.NewRouter(tenantRepo, func(cfg *tenant.Config) (*gorm.DB, error) {
		return connection.OpenPostgres(connection.PostgresConfig{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.SSLMode,
		})
	})

	// --- Repositories ---
	employeeRepo := employee.NewRepository()
	clockingRepo := clocking.NewRepository()
	faceRepo := face.NewRepository()
	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	// --- Services ---
	directory := employee.NewDirectory(employeeRepo)
	clockingService := clocking.NewService(tenantRouter, directory, clockingRepo, outboxRepo)

	extractorURL := os.Getenv("FACE_EXTRACTOR_URL")
	if extractorURL == "" {
		extractorURL = "http://localhost:18081"
	}
	faceService := face.NewService(
		face.ConfigFromEnv(),
		tenantRouter,
		directory,
		faceRepo,
		face.NewRemoteExtractor(extractorURL),
	)

	// --- Authorization ---
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Handlers ---
	clockingHandler := clocking.NewHandler(clockingService, rdb)
	faceHandler := face.NewHandler(faceService)

	// --- Routes ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(20, 40))

	api := router.Group("/api/v1")
	{
		clocking.RegisterRoutes(api, clockingHandler, enforcer, rdb)
		face.RegisterRoutes(api, faceHandler, enforcer)
	}

	return nil
}
