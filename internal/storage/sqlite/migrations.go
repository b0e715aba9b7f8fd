package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/xenking/shopdesk/db"
)

// Migration is a versioned schema change.
type Migration struct {
	Version string
	Up      string
}

// AllMigrations lists schema migrations; they are applied in semver order.
var AllMigrations = []Migration{
	{Version: "1.0.0", Up: db.SQLiteSchema},
}

const schemaVersionDDL = `
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// ApplyMigrations brings the schema up to the latest version. Each migration
// runs in its own transaction together with its version row.
func ApplyMigrations(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schemaVersionDDL); err != nil {
		return fmt.Errorf("creating schema_version: %w", err)
	}

	current, err := currentVersion(ctx, conn)
	if err != nil {
		return err
	}

	pending, err := sortedMigrations(AllMigrations)
	if err != nil {
		return err
	}
	for _, m := range pending {
		if current != nil && !m.version.GreaterThan(current) {
			continue
		}
		if err := apply(ctx, conn, m); err != nil {
			return err
		}
	}
	return nil
}

type versioned struct {
	Migration
	version *semver.Version
}

func sortedMigrations(ms []Migration) ([]versioned, error) {
	out := make([]versioned, 0, len(ms))
	for _, m := range ms {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return nil, fmt.Errorf("migration version %q: %w", m.Version, err)
		}
		out = append(out, versioned{Migration: m, version: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version.LessThan(out[j].version) })
	return out, nil
}

func currentVersion(ctx context.Context, conn *sql.DB) (*semver.Version, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version FROM schema_version`)
	if err != nil {
		return nil, fmt.Errorf("reading schema_version: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var latest *semver.Version
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning schema_version: %w", err)
		}
		v, err := semver.NewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("stored schema version %q: %w", raw, err)
		}
		if latest == nil || v.GreaterThan(latest) {
			latest = v
		}
	}
	return latest, rows.Err()
}

func apply(ctx context.Context, conn *sql.DB, m versioned) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return fmt.Errorf("applying migration %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, m.Version); err != nil {
		return fmt.Errorf("recording migration %s: %w", m.Version, err)
	}
	return tx.Commit()
}
