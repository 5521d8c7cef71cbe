package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/GiorgiUbiria/donation_platform/configs"
	"github.com/GiorgiUbiria/donation_platform/internal/auth"
	"github.com/GiorgiUbiria/donation_platform/internal/handlers"
	"github.com/GiorgiUbiria/donation_platform/internal/jobs"
	"github.com/GiorgiUbiria/donation_platform/internal/ledger"
	"github.com/GiorgiUbiria/donation_platform/internal/logger"
	"github.com/GiorgiUbiria/donation_platform/internal/routes"
	"github.com/GiorgiUbiria/donation_platform/internal/seed"
	"github.com/GiorgiUbiria/donation_platform/internal/services"
	"github.com/GiorgiUbiria/donation_platform/internal/store"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()

	cfg, err := configs.Load(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Log.Sync()

	db, err := store.Open(cfg.DB, logger.Log)
	if err != nil {
		logger.Log.Fatal("database connection failed", zap.Error(err))
	}
	if cfg.DB.AutoMigrate {
		if err := store.Migrate(db); err != nil {
			logger.Log.Fatal("database migration failed", zap.Error(err))
		}
	}
	if cfg.Seed.Enabled {
		if err := seed.Run(context.Background(), db, logger.Log); err != nil {
			logger.Log.Fatal("seed failed", zap.Error(err))
		}
	}

	l := ledger.New(nil)
	tokens := auth.NewTokens(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, nil)
	campaigns := services.NewCampaignService(db, l, logger.Log)
	h := handlers.New(handlers.Services{
		Auth:       services.NewAuthService(db, tokens, logger.Log),
		Campaigns:  campaigns,
		Donations:  services.NewDonationService(db, l, logger.Log),
		Categories: services.NewCategoryService(db),
		Comments:   services.NewCommentService(db),
	}, store.Ping(db))

	var sweeper *jobs.Sweeper
	if cfg.Ledger.SweepEnabled {
		sweeper, err = jobs.NewSweeper(cfg.Ledger.SweepSchedule, campaigns, logger.Log)
		if err != nil {
			logger.Log.Fatal("invalid sweep schedule", zap.Error(err))
		}
		sweeper.Start()
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      routes.NewRoutes(h, tokens, logger.Log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
	if sweeper != nil {
		sweeper.Stop(ctx)
	}

	if err := store.Close(db); err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
	} else {
		logger.Log.Info("db closed")
	}

	logger.Log.Info("server stopped")
}
