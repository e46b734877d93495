// Command migrate runs schema operations for the API database.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"agora/internal/config"
	"agora/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|auto|version|down> [steps]")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	if cmd == "auto" {
		db, err := database.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() { _ = database.Close(db) }()

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto schema apply failed: %w", err)
		}
		log.Println("automigrations applied")
		return nil
	}

	if cfg.DBDriver != config.DriverPostgres {
		return fmt.Errorf("%s migrations require DB_DRIVER=postgres, use auto for %s", cmd, cfg.DBDriver)
	}
	url := database.PostgresURL(cfg)

	switch cmd {
	case "up":
		if err := database.RunMigrations(url); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Println("sql migrations applied")
	case "version":
		version, dirty, err := database.MigrationVersion(url)
		if err != nil {
			return fmt.Errorf("read version failed: %w", err)
		}
		log.Printf("version=%d dirty=%t", version, dirty)
	case "down":
		steps := 1
		if flag.NArg() >= 2 {
			steps, err = strconv.Atoi(flag.Arg(1))
			if err != nil {
				return fmt.Errorf("invalid steps %q: %w", flag.Arg(1), err)
			}
		}
		if err := database.RollbackMigrations(url, steps); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Printf("rolled back %d migration(s)", steps)
	default:
		return usage()
	}

	return nil
}
