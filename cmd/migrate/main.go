package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/clinic-management/clinic-service/internal/config"
	"github.com/clinic-management/clinic-service/internal/db"
	"github.com/clinic-management/clinic-service/internal/logger"
	"github.com/joho/godotenv"
)

// migrate creates the clinic schema and seeds the default doctors
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format).WithComponent("migrate")
	log.Info("Schema migration - starting")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sqlDB, err := db.Connect(ctx, cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer sqlDB.Close()

	gdb, err := db.OpenGorm(sqlDB, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open gorm")
	}

	if err := db.Migrate(gdb.WithContext(ctx)); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}

	log.Info("✓ Schema migration completed")
}
