// Package store persists computed schedule runs to a local SQLite
// database so past schedules can be listed and compared. The scheduler
// core stays persistence-free; the CLI saves a run after computing it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/gantry/internal/calendar"
	"github.com/papapumpkin/gantry/internal/schedule"
)

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// schema contains the DDL executed on open. IF NOT EXISTS makes it safe
// to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    project        TEXT NOT NULL,
    created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    task_count     INTEGER NOT NULL,
    span_days      INTEGER NOT NULL,
    critical_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_tasks (
    run_id      INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    task_id     TEXT NOT NULL,
    title       TEXT NOT NULL DEFAULT '',
    assignee    TEXT NOT NULL,
    hours       REAL NOT NULL,
    start_date  TEXT NOT NULL,
    end_date    TEXT NOT NULL,
    slack_hours REAL NOT NULL,
    critical    INTEGER NOT NULL,
    manual      INTEGER NOT NULL,
    delay_days  INTEGER NOT NULL,
    PRIMARY KEY (run_id, task_id)
);
`

const dateLayout = "2006-01-02"

// Store keeps schedule run history in a local SQLite database in WAL
// mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath, enables WAL mode and
// a busy timeout, and creates the schema if needed.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and a lone pooled
	// connection keeps the PRAGMA setup consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one saved schedule computation.
type Run struct {
	ID            int64
	Project       string
	CreatedAt     time.Time
	TaskCount     int
	SpanDays      int
	CriticalCount int
}

// RunTask is one task row of a saved run.
type RunTask struct {
	TaskID     string
	Title      string
	Assignee   string
	Hours      float64
	Start      time.Time
	End        time.Time
	SlackHours float64
	Critical   bool
	Manual     bool
	DelayDays  int
}

// SaveRun records a computed schedule under the given project name and
// returns the new run id. The run and its task rows are written in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, project string, sched []schedule.ScheduledTask, cfg schedule.Config) (int64, error) {
	critical := 0
	for _, st := range sched {
		if st.Critical {
			critical++
		}
	}
	span := 0
	if len(sched) > 0 {
		span = calendar.WorkingDaysBetween(schedule.ProjectStart(sched), schedule.ProjectEnd(sched), cfg.Week)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin save: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (project, task_count, span_days, critical_count) VALUES (?, ?, ?, ?)`,
		project, len(sched), span, critical)
	if err != nil {
		return 0, fmt.Errorf("store: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: run id: %w", err)
	}

	const q = `
		INSERT INTO run_tasks
			(run_id, task_id, title, assignee, hours, start_date, end_date, slack_hours, critical, manual, delay_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, st := range sched {
		if _, err := tx.ExecContext(ctx, q,
			runID, st.ID, st.Title, st.Assignee, st.EstimatedHours,
			st.Start.Format(dateLayout), st.End.Format(dateLayout),
			st.SlackHours, st.Critical, st.Manual, st.DelayDays); err != nil {
			return 0, fmt.Errorf("store: insert task %q: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit save: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first, up to limit
// (or all when limit <= 0).
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, project, created_at, task_count, span_days, critical_count
		FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Project, &r.CreatedAt, &r.TaskCount, &r.SpanDays, &r.CriticalCount); err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunTasks returns the task rows of a saved run in task id order.
func (s *Store) RunTasks(ctx context.Context, runID int64) ([]RunTask, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("store: check run %d: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, title, assignee, hours, start_date, end_date, slack_hours, critical, manual, delay_days
		FROM run_tasks WHERE run_id = ? ORDER BY task_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: load run %d: %w", runID, err)
	}
	defer rows.Close()

	var tasks []RunTask
	for rows.Next() {
		var rt RunTask
		var start, end string
		if err := rows.Scan(&rt.TaskID, &rt.Title, &rt.Assignee, &rt.Hours,
			&start, &end, &rt.SlackHours, &rt.Critical, &rt.Manual, &rt.DelayDays); err != nil {
			return nil, fmt.Errorf("store: scan task: %w", err)
		}
		if rt.Start, err = time.Parse(dateLayout, start); err != nil {
			return nil, fmt.Errorf("store: task %q start: %w", rt.TaskID, err)
		}
		if rt.End, err = time.Parse(dateLayout, end); err != nil {
			return nil, fmt.Errorf("store: task %q end: %w", rt.TaskID, err)
		}
		tasks = append(tasks, rt)
	}
	return tasks, rows.Err()
}
