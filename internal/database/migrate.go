package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"coopcycle-service/internal/repository"
)

// Migrate applies every *.up.sql file of dir in name order, once. Applied
// versions are recorded in schema_migrations.
func Migrate(ctx context.Context, db repository.DBTX, dir string) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var upMigrations []string
	for _, file := range files {
		if name := file.Name(); strings.HasSuffix(name, ".up.sql") {
			upMigrations = append(upMigrations, name)
		}
	}
	sort.Strings(upMigrations)

	log.Printf("Found %d migrations in %s", len(upMigrations), dir)

	for _, migration := range upMigrations {
		var exists bool
		err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", migration).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", migration, err)
		}
		if exists {
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(dir, migration))
		if err != nil {
			return fmt.Errorf("failed to read sql file %s: %w", migration, err)
		}

		if _, err := db.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", migration, err)
		}

		if _, err := db.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", migration); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration, err)
		}
		log.Printf("Applied migration %s", migration)
	}

	return nil
}
