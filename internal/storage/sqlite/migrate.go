package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
)

type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

// migrations run in version order. Each must be idempotent: they probe the
// live schema before changing it, so re-running against an already-migrated
// database is a no-op.
var migrations = []migration{
	{1, "add starred column", migrateStarredColumn},
	{2, "add starred index", migrateStarredIndex},
	{3, "add date_applied index", migrateDateAppliedIndex},
}

// LatestMigrationVersion is the highest known migration version.
const LatestMigrationVersion = 3

// RunMigrations applies all pending migrations in order.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	for _, m := range migrations {
		applied, err := migrationApplied(ctx, db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("migration %d (%s): begin: %w", m.version, m.name, err)
		}
		if err := m.apply(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): record: %w", m.version, m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d (%s): commit: %w", m.version, m.name, err)
		}
	}
	return nil
}

func migrationApplied(ctx context.Context, db *sql.DB, version int) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check migration %d: %w", version, err)
	}
	return n > 0, nil
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func migrateStarredColumn(ctx context.Context, tx *sql.Tx) error {
	exists, err := columnExists(ctx, tx, "jobs", "starred")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = tx.ExecContext(ctx, "ALTER TABLE jobs ADD COLUMN starred INTEGER NOT NULL DEFAULT 0")
	return err
}

func migrateStarredIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_jobs_starred ON jobs(starred)")
	return err
}

func migrateDateAppliedIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_jobs_date_applied ON jobs(date_applied)")
	return err
}

// MigrationsCurrent reports whether the database at path exists and has
// every known migration applied, without modifying it. A missing file or
// missing tables reads as not current.
func MigrationsCurrent(ctx context.Context, path string) (bool, error) {
	if path != ":memory:" {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_pragma=busy_timeout(30000)")
	if err != nil {
		return false, err
	}
	defer db.Close()

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='schema_migrations'").Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var max sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&max); err != nil {
		return false, err
	}
	return max.Valid && max.Int64 >= LatestMigrationVersion, nil
}
