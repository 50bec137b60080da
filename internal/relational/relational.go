// Package relational implements the audit-only SQLite recorder of §6: a
// thin log of computation times and outcomes, kept strictly outside the
// reasoning path (never consulted by summary, lca, characterize, or
// kernel). Schema and lifecycle grounded on the teacher's
// internal/northstar store; driver grounded on the teacher's own
// cmd/query-kb, which opens modernc.org/sqlite under the "sqlite" name.
package relational

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pietrocfn02/neXSim-latest/internal/model"
)

// Computation is one audited pipeline run.
type Computation struct {
	Unit       []model.EntityId
	Duration   time.Duration
	ErrorKind  string
	StageTimes []model.StageTiming
}

// Recorder persists Computation rows. A nil Recorder disables auditing
// entirely; callers must check for nil themselves (see pipeline.finish).
type Recorder interface {
	RecordComputation(ctx context.Context, c Computation) error
	Close() error
}

// SQLiteRecorder is the only Recorder adapter: no other relational driver
// appears anywhere in the example pack for this domain.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (creating if absent) the audit database at path.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("relational: failed to open database: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("relational: failed to initialize schema: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS computation_times (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_json TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		error_kind TEXT NOT NULL DEFAULT '',
		stage_times_json TEXT,
		recorded_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_computation_times_recorded_at ON computation_times(recorded_at);
	`
	_, err := r.db.Exec(schema)
	return err
}

// RecordComputation inserts one audit row. Failures here are non-fatal to
// the caller's pipeline run; it is logged, not propagated as a stage error.
func (r *SQLiteRecorder) RecordComputation(ctx context.Context, c Computation) error {
	unitJSON, err := json.Marshal(c.Unit)
	if err != nil {
		return fmt.Errorf("relational: marshal unit: %w", err)
	}
	stagesJSON, err := json.Marshal(c.StageTimes)
	if err != nil {
		return fmt.Errorf("relational: marshal stage times: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO computation_times (unit_json, duration_ms, error_kind, stage_times_json, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, unitJSON, c.Duration.Milliseconds(), c.ErrorKind, stagesJSON, time.Now())
	if err != nil {
		return fmt.Errorf("relational: insert computation: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// RecentComputations returns the most recent audit rows, newest first. Used
// only by operator tooling, never by the reasoning pipeline itself.
func (r *SQLiteRecorder) RecentComputations(ctx context.Context, limit int) ([]Computation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT unit_json, duration_ms, error_kind, stage_times_json
		FROM computation_times
		ORDER BY recorded_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Computation
	for rows.Next() {
		var unitJSON, stagesJSON sql.NullString
		var durationMs int64
		var errorKind string
		if err := rows.Scan(&unitJSON, &durationMs, &errorKind, &stagesJSON); err != nil {
			continue
		}
		c := Computation{Duration: time.Duration(durationMs) * time.Millisecond, ErrorKind: errorKind}
		if unitJSON.Valid {
			json.Unmarshal([]byte(unitJSON.String), &c.Unit)
		}
		if stagesJSON.Valid {
			json.Unmarshal([]byte(stagesJSON.String), &c.StageTimes)
		}
		out = append(out, c)
	}
	return out, nil
}
