package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nlshell/nlsh/internal/domain"
	"github.com/nlshell/nlsh/internal/ports"
)

func sampleRecord(prompt, command, outcome string) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC().Truncate(time.Second),
		Prompt:     prompt,
		Command:    command,
		RiskLevel:  "safe",
		Executed:   true,
		ExitCode:   0,
		Outcome:    outcome,
		DurationMS: 42,
	}
}

func runStoreContract(t *testing.T, store ports.HistoryStore) {
	t.Helper()

	if err := store.Save(sampleRecord("list files", "ls -la", "success")); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Save(sampleRecord("disk usage", "df -h", "success")); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: want 2, got %d", len(records))
	}

	limited, err := store.Records(1, "")
	if err != nil {
		t.Fatalf("Records(limit) error: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limited records: want 1, got %d", len(limited))
	}

	found, err := store.Records(0, "disk")
	if err != nil {
		t.Fatalf("Records(search) error: %v", err)
	}
	if len(found) != 1 || found[0].Command != "df -h" {
		t.Fatalf("search: want the df -h record, got %+v", found)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	records, err = store.Records(0, "")
	if err != nil {
		t.Fatalf("Records after Clear error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records after clear: want 0, got %d", len(records))
	}
}

func TestSQLiteStoreContract(t *testing.T) {
	store := NewSQLiteStoreAt(filepath.Join(t.TempDir(), "history.db"))
	runStoreContract(t, store)
}

func TestFileStoreContract(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))
	runStoreContract(t, store)
}

func TestSQLiteStoreFallsBackWhenUnopenable(t *testing.T) {
	// A directory in place of the database forces the jsonl fallback.
	dir := t.TempDir()
	store := NewSQLiteStoreAt(dir)
	if store.db != nil {
		t.Skip("driver opened the path anyway")
	}
	if err := store.Save(sampleRecord("q", "ls", "success")); err != nil {
		t.Fatalf("fallback Save error: %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("fallback Records error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("fallback records: want 1, got %d", len(records))
	}
}

func TestFileStoreReturnsNewestFirst(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))
	if err := store.Save(sampleRecord("first", "ls", "success")); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Save(sampleRecord("second", "pwd", "success")); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records error: %v", err)
	}
	if records[0].Prompt != "second" {
		t.Fatalf("order: want newest first, got %q", records[0].Prompt)
	}
}
