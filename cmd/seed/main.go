package main

import (
	"context"
	"log"

	"estateweb/internal/config"
	"estateweb/internal/project"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	ctx := context.Background()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database (%s): %v", config.RedactDSN(cfg.DBDSN), err)
	}
	defer pool.Close()

	repo := project.NewPostgresRepo(pool, cfg.DBTimeout)
	catalog := project.Catalog()
	log.Printf("Seeding %d projects...", len(catalog))

	for _, p := range catalog {
		if err := repo.Upsert(ctx, p); err != nil {
			log.Fatalf("Failed to upsert project %d (%s): %v", p.ID, p.Title, err)
		}
	}

	var total int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM projects").Scan(&total); err != nil {
		log.Fatalf("Failed to count projects: %v", err)
	}
	log.Printf("Successfully seeded projects; %d in database", total)
}
