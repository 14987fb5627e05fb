package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists turn outcomes to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS chat_turns (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT NOT NULL,
			branch      TEXT NOT NULL,
			function    TEXT,
			error_kind  TEXT,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_turns_ts ON chat_turns(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTurn(evt *TurnEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO chat_turns
		(timestamp, session_id, branch, function, error_kind, duration_ms)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.SessionID, evt.Branch, evt.Function, evt.ErrorKind,
		evt.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Stats() (TurnStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := TurnStats{Functions: map[string]int{}}
	rows, err := r.db.Query(`SELECT branch, COALESCE(function, ''), COUNT(*) FROM chat_turns GROUP BY branch, function`)
	if err != nil {
		return stats, fmt.Errorf("query turn stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var branch, function string
		var n int
		if err := rows.Scan(&branch, &function, &n); err != nil {
			return stats, fmt.Errorf("scan turn stats: %w", err)
		}
		stats.Total += n
		switch branch {
		case "direct":
			stats.Direct += n
		case "function":
			stats.Function += n
		case "error":
			stats.Errors += n
		}
		if function != "" {
			stats.Functions[function] += n
		}
	}
	return stats, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
