package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"bookshelf/internal/platform/postgres"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	loadEnvFiles()
	cfg := loadMigrateConfig()
	dir := cfg.Dir

	if *command == "create" {
		if *name == "" {
			log.Fatal("Name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.DSN, cfg.ConnectTimeout)
	if err != nil {
		log.Fatalf("Failed to connect to database %s: %v", postgres.RedactDSN(cfg.DSN), err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	switch *command {
	case "up":
		if err := goose.UpContext(ctx, db, dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, dir); err != nil {
			log.Fatalf("Failed to rollback migrations: %v", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := goose.StatusContext(ctx, db, dir); err != nil {
			log.Fatalf("Failed to check migration status: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s. Use: up, down, status, create", *command)
	}
}
