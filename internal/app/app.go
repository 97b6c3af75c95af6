package app

import (
	"fmt"
	"os"

	"go-timeclock/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func directoryConfigFromEnv() connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
}

// BuildApp connects the shared infrastructure (tenant directory database,
// redis) and wires every module onto the router. Per-tenant databases are
// opened lazily by the tenant router, not here.
func BuildApp(router *gin.Engine) error {
	directoryDB, err := connection.ConnectGORMWithRetry(directoryConfigFromEnv(), 5)
	if err != nil {
		return fmt.Errorf("connect tenant directory: %w", err)
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	if err := registerModules(router, directoryDB, redisClient); err != nil {
		return err
	}

	zap.L().Info("application wired")
	return nil
}
