package providers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"insight-engine/internal/insight"
	"insight-engine/internal/tools"
)

// DatabaseProvider answers database-query sub-tasks with read-only
// SELECTs over the metrics table.
type DatabaseProvider struct {
	db *sql.DB
}

// NewDatabaseProvider opens (or creates) the metrics database.
func NewDatabaseProvider(dbPath string) (*DatabaseProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics database: %w", err)
	}

	p := &DatabaseProvider{db: db}
	if err := p.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate metrics database: %w", err)
	}
	return p, nil
}

func (p *DatabaseProvider) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		ts INTEGER NOT NULL,
		value REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_metrics_name_ts ON metrics(name, ts);
	`
	_, err := p.db.Exec(schema)
	return err
}

// Seed inserts a sample series when the table is empty, so a fresh
// install can answer queries out of the box.
func (p *DatabaseProvider) Seed(ctx context.Context, name string, values []float64) error {
	var count int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM metrics`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	base := time.Now().AddDate(0, 0, -len(values))
	for i, v := range values {
		ts := base.AddDate(0, 0, i).Unix()
		if _, err := p.db.ExecContext(ctx,
			`INSERT INTO metrics (name, ts, value) VALUES (?, ?, ?)`, name, ts, v); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (p *DatabaseProvider) Close() error {
	return p.db.Close()
}

func (p *DatabaseProvider) Name() string { return "database_query" }

func (p *DatabaseProvider) Keywords() []string {
	return []string{"metric", "database", "sales", "revenue", "table", "records", "history"}
}

func (p *DatabaseProvider) Affinities() map[insight.IntentCategory]float64 {
	return map[insight.IntentCategory]float64{
		insight.IntentDescriptive: 0.9,
		insight.IntentComparative: 0.9,
		insight.IntentTrend:       0.8,
		insight.IntentAnomaly:     0.8,
		insight.IntentUnknown:     0.6,
	}
}

func (p *DatabaseProvider) Class() tools.TimeoutClass { return tools.TimeoutLong }

// Invoke supports the "query" method with optional "metric", "from",
// "to" (Unix seconds) and "limit" parameters, returning rows ordered by
// timestamp.
func (p *DatabaseProvider) Invoke(ctx context.Context, method string, params map[string]any) (any, error) {
	if method != "query" {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	limit := int64(500)
	if l, ok := intParam(params["limit"]); ok && l > 0 {
		limit = l
	}

	var conds []string
	var args []any
	if metric, ok := params["metric"].(string); ok && metric != "" {
		conds = append(conds, "name = ?")
		args = append(args, metric)
	}
	if from, ok := intParam(params["from"]); ok {
		conds = append(conds, "ts >= ?")
		args = append(args, from)
	}
	if to, ok := intParam(params["to"]); ok {
		conds = append(conds, "ts <= ?")
		args = append(args, to)
	}

	query := `SELECT name, ts, value FROM metrics`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ts LIMIT ?"
	args = append(args, limit)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("metrics query failed: %w", err)
	}
	defer rows.Close()

	payload := TabularPayload{Headers: []string{"name", "ts", "value"}}
	for rows.Next() {
		var name string
		var ts int64
		var value float64
		if err := rows.Scan(&name, &ts, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metrics row: %w", err)
		}
		payload.Rows = append(payload.Rows, map[string]any{
			"name":  name,
			"ts":    float64(ts),
			"value": value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payload, nil
}

// intParam reads a numeric parameter that may arrive as int, int64, or
// float64 depending on whether it was built in-process or decoded from
// JSON.
func intParam(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
