package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
)

//go:embed sql
var embedded embed.FS

// Migrator manages database migrations
type Migrator struct {
	db      *bun.DB
	dialect string
	logger  zerolog.Logger
}

// NewMigrator creates a migrator for the schema files of dialect
// ("mysql", "postgres" or "sqlite").
func NewMigrator(db *bun.DB, dialect string, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:      db,
		dialect: dialect,
		logger:  lgr,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.NewRaw(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var count int
	err := m.db.NewRaw(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(ctx, &count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Versions lists the embedded migration files for the dialect in apply order.
func (m *Migrator) Versions() ([]string, error) {
	dir := path.Join("sql", m.dialect)
	entries, err := fs.ReadDir(embedded, dir)
	if err != nil {
		return nil, fmt.Errorf("no migrations for dialect %q: %w", m.dialect, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Migrate applies every embedded migration that has not been recorded yet.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return 0, err
	}

	files, err := m.Versions()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, file := range files {
		ok, err := m.apply(ctx, file)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, filename string) (bool, error) {
	// "001_init.sql" => "001"
	version := strings.SplitN(filename, "_", 2)[0]

	done, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return false, err
	}
	if done {
		m.logger.Debug().Str("file", filename).Msg("Migration already applied, skipping")
		return false, nil
	}

	content, err := embedded.ReadFile(path.Join("sql", m.dialect, filename))
	if err != nil {
		return false, fmt.Errorf("failed to read migration file: %w", err)
	}

	// The mysql driver rejects multi-statement strings, so run them one by one.
	err = m.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, stmt := range splitStatements(string(content)) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("error occurred during SQL migration execution: %w", err)
			}
		}
		_, err := tx.NewRaw(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			version, time.Now().UTC()).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("migration %s: %w", filename, err)
	}

	m.logger.Info().Str("file", filename).Str("dialect", m.dialect).Msg("Migration applied")
	return true, nil
}

func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
