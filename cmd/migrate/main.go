package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding the *.sql migrations")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer database.Close()

	if err := run(database, *mode, *dir); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

func run(database *sql.DB, mode, migrationsDir string) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	slices.Sort(files)

	switch mode {
	case "up":
		return migrateUp(database, files)
	case "down":
		return migrateDown(database, files)
	case "status":
		return printStatus(database, files)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'status')", mode)
	}
}

func applied(database *sql.DB, version string) (bool, error) {
	var exists bool
	err := database.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists)
	return exists, err
}

// migrateUp applies every pending file, each in its own transaction.
func migrateUp(database *sql.DB, files []string) error {
	log := logger.L()

	for _, file := range files {
		version := filepath.Base(file)

		done, err := applied(database, version)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if done {
			log.Debug("migration already applied", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		log.Info("applying migration", zap.String("version", version))
		err = inTx(database, func(tx *sql.Tx) error {
			if _, err := tx.Exec(section(string(content), "Up")); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", version, err)
		}
	}

	log.Info("migrations up to date")
	return nil
}

// migrateDown rolls back the most recently applied migration.
func migrateDown(database *sql.DB, files []string) error {
	log := logger.L()

	var version string
	err := database.QueryRow(
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	idx := slices.IndexFunc(files, func(f string) bool { return filepath.Base(f) == version })
	if idx < 0 {
		return fmt.Errorf("migration file not found for version: %s", version)
	}

	content, err := os.ReadFile(files[idx])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", files[idx], err)
	}

	log.Info("rolling back migration", zap.String("version", version))
	err = inTx(database, func(tx *sql.Tx) error {
		if _, err := tx.Exec(section(string(content), "Down")); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, version)
		return err
	})
	if err != nil {
		return fmt.Errorf("rollback %s: %w", version, err)
	}
	return nil
}

func printStatus(database *sql.DB, files []string) error {
	for _, file := range files {
		version := filepath.Base(file)
		done, err := applied(database, version)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		state := "pending"
		if done {
			state = "applied"
		}
		fmt.Printf("%-40s %s\n", version, state)
	}
	return nil
}

func inTx(database *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := database.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// section returns the statements between "-- +migrate <name>" and the next
// marker.
func section(content, name string) string {
	var (
		part   strings.Builder
		inPart bool
	)
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "-- +migrate") {
			if inPart {
				break
			}
			inPart = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-- +migrate")) == name
			continue
		}
		if inPart {
			part.WriteString(line)
			part.WriteString("\n")
		}
	}
	return part.String()
}
