package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/MattU27/301st-personnel-management-sub002/config"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/database"
	applogger "github.com/MattU27/301st-personnel-management-sub002/pkg/logger"
)

// Batch reconciliation entry point. Walks every training (or a single one
// with -training), validates and migrates its attendees, and prints a JSON
// summary. Exits non-zero when the pass itself fails; per-record errors are
// reported in the summary instead.
func main() {
	trainingID := flag.String("training", "", "reconcile a single training by id")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall pass timeout")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config failed: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}()

	repo := repository.NewRepository(db)
	resolver := service.NewPersonnelResolver(repo.Personnel)
	reconciler := service.NewReconcileService(repo, resolver, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	var summary interface{}
	if *trainingID != "" {
		summary, err = reconciler.MigrateTraining(ctx, *trainingID)
	} else {
		summary, err = reconciler.MigrateAll(ctx)
	}
	if err != nil {
		logger.Fatal("reconciliation pass failed", zap.Error(err))
	}

	logger.Info("reconciliation pass finished", zap.Duration("elapsed", time.Since(start)))

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Fatal("encoding summary failed", zap.Error(err))
	}
	fmt.Println(string(out))
}
