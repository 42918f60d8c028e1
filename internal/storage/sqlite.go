// Package storage persists simulation runs and their snapshots in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridsim/internal/core"
	"github.com/vovakirdan/gridsim/internal/grid"
)

// ErrNotFound is returned when a run or snapshot does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite connection.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation run.
type Run struct {
	ID         string
	SimID      string
	Shape      string
	Boundary   string
	Width      int
	Height     int
	Seed       int64
	Steps      int
	Population int
	Finished   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Snapshot is the set of non-default cells at one step of a run.
type Snapshot struct {
	RunID      string
	Step       int
	Population int
	Cells      []core.CellValue
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			sim_id TEXT NOT NULL,
			shape TEXT NOT NULL,
			boundary TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			population INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_sim_id ON runs(sim_id);

		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			population INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (run_id, step)
		);

		CREATE TABLE IF NOT EXISTS snapshot_cells (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (run_id, step, y, x)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun records the start of a run on structure st and returns it
// with a fresh UUID.
func (s *Store) CreateRun(simID string, st *grid.Structure, seed int64) (Run, error) {
	run := Run{
		ID:       uuid.NewString(),
		SimID:    simID,
		Shape:    st.Shape().String(),
		Boundary: st.Boundary().String(),
		Width:    st.Width(),
		Height:   st.Height(),
		Seed:     seed,
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, sim_id, shape, boundary, width, height, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SimID, run.Shape, run.Boundary, run.Width, run.Height, run.Seed,
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot create run: %w", err)
	}
	return s.GetRun(run.ID)
}

// UpdateRun stores the latest progress of a run.
func (s *Store) UpdateRun(id string, st core.SimState) error {
	res, err := s.db.Exec(
		`UPDATE runs SET steps = ?, population = ?, finished = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		st.Step, st.Population, st.Finished, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: run %s: %w", id, ErrNotFound)
	}
	return nil
}

const runColumns = `id, sim_id, shape, boundary, width, height, seed, steps, population, finished, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var createdAt, updatedAt any
	err := row.Scan(&r.ID, &r.SimID, &r.Shape, &r.Boundary, &r.Width, &r.Height,
		&r.Seed, &r.Steps, &r.Population, &r.Finished, &createdAt, &updatedAt)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (Run, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("storage: run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first. An empty simID
// lists every simulation.
func (s *Store) ListRuns(simID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs
		 WHERE ? = '' OR sim_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		simID, simID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// DeleteRun removes a run and every snapshot recorded for it.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	for _, stmt := range []string{
		"DELETE FROM snapshot_cells WHERE run_id = ?",
		"DELETE FROM snapshots WHERE run_id = ?",
		"DELETE FROM runs WHERE id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("storage: cannot delete run: %w", err)
		}
	}
	return tx.Commit()
}

// SaveSnapshot stores the non-default cells of a run at step. Saving the
// same step twice replaces the earlier snapshot.
func (s *Store) SaveSnapshot(runID string, step int, cells []core.CellValue) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM snapshot_cells WHERE run_id = ? AND step = ?", runID, step); err != nil {
		return fmt.Errorf("storage: cannot replace snapshot: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO snapshots (run_id, step, population) VALUES (?, ?, ?)`,
		runID, step, len(cells),
	); err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	insert, err := tx.Prepare("INSERT INTO snapshot_cells (run_id, step, x, y, value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer insert.Close()
	for _, c := range cells {
		if _, err := insert.Exec(runID, step, c.X, c.Y, c.Value); err != nil {
			return fmt.Errorf("storage: cannot save cell (%d,%d): %w", c.X, c.Y, err)
		}
	}
	return tx.Commit()
}

// LoadSnapshot retrieves the snapshot of a run at step. A negative step
// selects the latest one.
func (s *Store) LoadSnapshot(runID string, step int) (Snapshot, error) {
	snap := Snapshot{RunID: runID}
	var createdAt any
	row := s.db.QueryRow(
		`SELECT step, population, created_at FROM snapshots
		 WHERE run_id = ? AND (? < 0 OR step = ?)
		 ORDER BY step DESC LIMIT 1`,
		runID, step, step,
	)
	err := row.Scan(&snap.Step, &snap.Population, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, fmt.Errorf("storage: snapshot %s@%d: %w", runID, step, ErrNotFound)
	}
	if err != nil {
		return snap, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	snap.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT x, y, value FROM snapshot_cells WHERE run_id = ? AND step = ? ORDER BY y, x`,
		runID, snap.Step,
	)
	if err != nil {
		return snap, fmt.Errorf("storage: cannot query cells: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c core.CellValue
		if err := rows.Scan(&c.X, &c.Y, &c.Value); err != nil {
			return snap, fmt.Errorf("storage: cannot scan cell: %w", err)
		}
		snap.Cells = append(snap.Cells, c)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return snap, nil
}

// SnapshotSteps lists the steps recorded for a run in ascending order.
func (s *Store) SnapshotSteps(runID string) ([]int, error) {
	rows, err := s.db.Query("SELECT step FROM snapshots WHERE run_id = ? ORDER BY step", runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var steps []int
	for rows.Next() {
		var step int
		if err := rows.Scan(&step); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		steps = append(steps, step)
	}
	return steps, rows.Err()
}
