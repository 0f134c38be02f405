package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY
)`

// Migrate applies the *.sql files under migrations/<driver> that have not
// been recorded in schema_migrations yet, in file name order. Each file and
// its bookkeeping row are applied in one transaction.
func Migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) ([]string, error) {
	dir := path.Join("migrations", db.DriverName())
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("fs.ReadDir(%s) > %w", dir, err)
	}

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, version := range applied {
		appliedSet[version] = true
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var newlyApplied []string
	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")
		if appliedSet[version] {
			continue
		}
		content, err := fs.ReadFile(migrations, path.Join(dir, name))
		if err != nil {
			return newlyApplied, fmt.Errorf("fs.ReadFile(%s) > %w", name, err)
		}

		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			for _, statement := range splitStatements(string(content)) {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return fmt.Errorf("apply %s: %w", name, err)
				}
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
				return fmt.Errorf("record %s: %w", name, err)
			}
			return nil
		}); err != nil {
			return newlyApplied, err
		}
		slog.Default().Info("applied migration", "driver", db.DriverName(), "version", version)
		newlyApplied = append(newlyApplied, version)
	}
	return newlyApplied, nil
}

// splitStatements splits a migration file on semicolons. Migration files do
// not contain semicolons inside literals.
func splitStatements(content string) []string {
	var statements []string
	for _, part := range strings.Split(content, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
