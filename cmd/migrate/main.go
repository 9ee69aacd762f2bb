package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"car-rental-backend/internal/config"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/migrations"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file, used when DATABASE_URL is unset")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	logger.Initialize("info", "text")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fatalf("failed to load configuration: %v", err)
		}
		dsn = cfg.GetDatabaseConnectionString()
	}

	m, err := migrations.New(dsn)
	if err != nil {
		fatalf("%v", err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatalf("up failed: %v", err)
		}
		logger.Info("Migrations applied")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				fatalf("down: invalid steps argument %q", args[1])
			}
			steps = n
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatalf("down failed: %v", err)
		}
		logger.Info("Migrations rolled back", "steps", steps)

	case "version":
		v, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			fatalf("version failed: %v", err)
		}
		fmt.Printf("version: %d  dirty: %v\n", v, dirty)

	case "force":
		if len(args) < 2 {
			fatalf("force: version argument required")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			fatalf("force: invalid version %q", args[1])
		}
		if err := m.Force(v); err != nil {
			fatalf("force failed: %v", err)
		}
		logger.Info("Migration version forced", "version", v)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [-config path] <command> [args]

Commands:
  up           Apply all pending migrations
  down [N]     Roll back N migrations (default: 1)
  version      Print the current schema version
  force <V>    Set the schema version without running migrations

Environment:
  DATABASE_URL  Database DSN. Overrides the configuration file.`)
}

func fatalf(format string, args ...any) {
	logger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
