package memory

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteDurable implements DurableStore on a local SQLite database.
type SQLiteDurable struct {
	db *sql.DB
}

// NewSQLiteDurable opens (or creates) the durable store at dbPath.
func NewSQLiteDurable(dbPath string) (*SQLiteDurable, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open durable store: %w", err)
	}

	store := &SQLiteDurable{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate durable store: %w", err)
	}
	return store, nil
}

func (s *SQLiteDurable) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL,
		kind TEXT NOT NULL,
		payload BLOB NOT NULL,
		version INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_key ON records(key, version);
	CREATE INDEX IF NOT EXISTS idx_records_expires ON records(expires_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *SQLiteDurable) Close() error {
	return s.db.Close()
}

// Query returns the newest unexpired versions for a key, newest first.
func (s *SQLiteDurable) Query(ctx context.Context, key string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT key, kind, payload, version, created_at, expires_at
		FROM records
		WHERE key = ? AND expires_at > strftime('%s','now')
		ORDER BY version DESC
		LIMIT ?`, key, limit)
	if err != nil {
		return nil, fmt.Errorf("durable query failed: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt, expiresAt int64
		if err := rows.Scan(&rec.Key, &rec.Kind, &rec.Payload, &rec.Version, &createdAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.CreatedAt = unixTime(createdAt)
		rec.ExpiresAt = unixTime(expiresAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Append writes a new version for the record's key. The version is
// assigned here: one past the current maximum.
func (s *SQLiteDurable) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (key, kind, payload, version, created_at, expires_at)
		VALUES (?, ?, ?,
			COALESCE((SELECT MAX(version) FROM records WHERE key = ?), 0) + 1,
			?, ?)`,
		rec.Key, rec.Kind, rec.Payload, rec.Key,
		rec.CreatedAt.Unix(), rec.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("durable append failed: %w", err)
	}
	return nil
}
