package main

import (
	"context"      // context package is needed for the Redis ping
	"database/sql" // Raw connection for the startup availability probe
	"log"          // log package is needed for logging
	"time"         // Sleep interval for the availability probe

	"recipe_api/internal/api"    // Custom package for API handlers
	"recipe_api/internal/config" // Custom package for configuration
	"recipe_api/internal/db"     // Startup probe and migrations

	_ "github.com/go-sql-driver/mysql" // MySQL driver for the raw probe connection

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Block until the database accepts connections. The probe retries
	// indefinitely with a fixed delay; the service takes no traffic until
	// the database is reachable.
	dsn := cfg.DSN()
	probe, err := sql.Open("mysql", dsn)
	if err != nil {
		logrus.Fatalf("failed to open DB probe connection: %v", err)
	}
	if err := db.WaitFor(probe.Ping, time.Sleep, db.DefaultWaitInterval, 0); err != nil {
		logrus.Fatalf("database never became available: %v", err)
	}
	_ = probe.Close()

	// Connect GORM to the now-reachable database
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Assemble routes
	r := api.Router(gormDB, redisClient, cfg)

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
