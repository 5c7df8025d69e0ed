package cortexsetup

import (
	"database/sql"
	"log"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const stateDBName = "setup.db"

const (
	statusOK     = "ok"
	statusFailed = "failed"
	statusWarn   = "warn"
)

// RunRecord is one journaled setup step or doctor check.
type RunRecord struct {
	ID        int64
	Command   string
	Step      string
	Status    string
	Detail    string
	CreatedAt time.Time
}

// openStateDB opens the workspace run journal, creating it if needed.
func openStateDB(dir string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", filepath.Join(dir, stateDBName))
	if err != nil {
		return nil, err
	}

	// Create table if not exists
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		command TEXT NOT NULL,
		step TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
	`

	if _, err := db.Exec(createTableSQL); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Printf("Failed to close state database: %v", cerr)
		}
		return nil, err
	}

	return db, nil
}

// recordStep journals the outcome of a single step or check.
func recordStep(db *sql.DB, command, step, status, detail string) error {
	_, err := db.Exec(
		"INSERT INTO runs (command, step, status, detail) VALUES (?, ?, ?, ?)",
		command, step, status, detail,
	)
	return err
}

// loadRuns returns the most recent journal rows, newest first.
func loadRuns(db *sql.DB, limit int) ([]RunRecord, error) {
	rows, err := db.Query(
		"SELECT id, command, step, status, detail, created_at FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Failed to close rows: %v", err)
		}
	}()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Command, &r.Step, &r.Status, &r.Detail, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
