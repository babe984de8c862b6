// Package history persists one record per processed query. SQLite is the
// primary backend; a jsonl file store takes over when the database cannot
// be opened.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore opens (or creates) ~/.nlsh/history/history.db.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(userHome(), ".nlsh", "history", "history.db"))
}

// NewSQLiteStoreAt opens the database at an explicit path. A store that
// fails to open degrades to the jsonl fallback instead of erroring.
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		prompt TEXT,
		command TEXT,
		risk_level TEXT,
		executed INTEGER,
		exit_code INTEGER,
		timed_out INTEGER,
		outcome TEXT,
		duration_ms INTEGER
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	return NewFileStoreAt(strings.TrimSuffix(s.path, ".db") + ".jsonl")
}

// Save implements ports.HistoryStore.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	if s.db == nil {
		return s.fallback().Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO queries
		(id, timestamp, prompt, command, risk_level, executed, exit_code, timed_out, outcome, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Prompt,
		record.Command,
		record.RiskLevel,
		boolToInt(record.Executed),
		record.ExitCode,
		boolToInt(record.TimedOut),
		record.Outcome,
		record.DurationMS,
	)
	return err
}

// Records returns history entries, newest first. Both limit and search are
// optional.
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	if s.db == nil {
		return s.fallback().Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, prompt, command, risk_level, executed, exit_code, timed_out, outcome, duration_ms FROM queries")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE prompt LIKE ? OR command LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts string
		var executed, timedOut int
		if err := rows.Scan(&rec.ID, &ts, &rec.Prompt, &rec.Command, &rec.RiskLevel,
			&executed, &rec.ExitCode, &timedOut, &rec.Outcome, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Executed = executed == 1
		rec.TimedOut = timedOut == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM queries")
	return err
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
