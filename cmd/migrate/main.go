package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/GiorgiUbiria/donation_platform/configs"
	"github.com/GiorgiUbiria/donation_platform/internal/logger"
	"github.com/GiorgiUbiria/donation_platform/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

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
	log := logger.Log.Named("migrate")

	if cfg.DB.Driver != "postgres" {
		log.Fatal("versioned migrations only target postgres; sqlite uses db.auto_migrate", zap.String("driver", cfg.DB.Driver))
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal("open embedded migrations", zap.Error(err))
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DB.DSN)
	if err != nil {
		log.Fatal("migration init failed", zap.Error(err))
	}
	defer m.Close()
	m.Log = &migrateLogger{log: log.Sugar()}

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("up failed", zap.Error(err))
		}
		log.Info("migrations: up completed")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				log.Fatal("down: invalid steps argument", zap.String("steps", args[1]))
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("down failed", zap.Error(err))
		}
		log.Info("migrations: down completed", zap.Int("steps", steps))

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal("version failed", zap.Error(err))
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			log.Fatal("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("force: invalid version", zap.String("version", args[1]))
		}
		if err := m.Force(v); err != nil {
			log.Fatal("force failed", zap.Error(err))
		}
		log.Info("migrations: forced", zap.Int("version", v))

	default:
		usage()
		os.Exit(1)
	}
}

type migrateLogger struct {
	log *zap.SugaredLogger
}

func (l *migrateLogger) Printf(format string, v ...any) { l.log.Infof(format, v...) }
func (l *migrateLogger) Verbose() bool                  { return false }

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [-config dir] <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print the current migration version
  force <V>    Force the migration version (clears the dirty flag)

The database is taken from db.dsn (DB_DSN) and must be a postgres:// URL.`)
}
