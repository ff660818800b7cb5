package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal manages the SQLite database holding the removal audit trail
type Journal struct {
	db *sql.DB
}

// Entry represents a single recorded removal event
type Entry struct {
	ID           int64
	Timestamp    time.Time
	Action       string // REMOVE or ERROR
	Path         string
	Name         string
	Kind         string // file, directory, symlink
	Size         int64
	ErrorMessage string
	CreatedAt    time.Time
}

// Open creates the journal database at path, initializing the schema on
// first use
func Open(path string) (*Journal, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
		}
	}

	// file: prefix with _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+path+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// Test connection with a real query so the file is created if missing
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("failed to initialize journal (check permissions on %s): %w", path, err)
	}

	// WAL mode: multiple readers, one writer
	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	j := &Journal{db: db}
	if err = j.initSchema(); err != nil {
		return nil, err
	}

	err = nil
	return j, nil
}

// initSchema creates tables and indexes if they don't exist
func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS removals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		path TEXT NOT NULL,
		name TEXT,
		kind TEXT NOT NULL,
		size INTEGER NOT NULL,
		error_message TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_removals_timestamp ON removals(timestamp);
	CREATE INDEX IF NOT EXISTS idx_removals_action ON removals(action);
	CREATE INDEX IF NOT EXISTS idx_removals_path ON removals(path);
	CREATE INDEX IF NOT EXISTS idx_removals_kind ON removals(kind);
	CREATE INDEX IF NOT EXISTS idx_removals_size ON removals(size);

	-- Metadata table for schema versioning
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Record inserts a removal event
func (j *Journal) Record(action, path, kind string, size int64, errorMsg string) error {
	query := `
	INSERT INTO removals (timestamp, action, path, name, kind, size, error_message)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := j.db.Exec(
		query,
		time.Now(),
		action,
		path,
		filepath.Base(path),
		kind,
		size,
		errorMsg,
	)
	return err
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}

// Vacuum optimizes the database (run periodically)
func (j *Journal) Vacuum() error {
	_, err := j.db.Exec("VACUUM")
	return err
}
