// Package history keeps an append-only local journal of rule mutations, so
// an operator can see when a binding was created or removed and for which
// hardware identity.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Hara602/ttyAnchor/internal/model"
	_ "modernc.org/sqlite"
)

// Entry is one journaled rule mutation.
type Entry struct {
	ID        int64
	Action    string // "create" or "delete"
	Symlink   string
	VendorID  string
	ProductID string
	Serial    string
	RuleFile  string
	CreatedAt time.Time
}

// Journal records rule mutations in a local sqlite database.
type Journal struct {
	db *sql.DB
}

// Open opens (and if needed creates) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS rule_journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		symlink TEXT NOT NULL,
		vendor_id TEXT,
		product_id TEXT,
		serial TEXT,
		rule_file TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal table: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends one mutation. Implements rules.Recorder.
func (j *Journal) Record(action string, rule model.RuleRecord) error {
	_, err := j.db.Exec(
		"INSERT INTO rule_journal(action, symlink, vendor_id, product_id, serial, rule_file) VALUES (?, ?, ?, ?, ?, ?)",
		action, rule.Symlink, rule.VendorID, rule.ProductID, rule.Serial, rule.FilePath,
	)
	return err
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	rows, err := j.db.Query(
		"SELECT id, action, symlink, vendor_id, product_id, serial, rule_file, created_at FROM rule_journal ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Action, &e.Symlink, &e.VendorID, &e.ProductID, &e.Serial, &e.RuleFile, &created); err != nil {
			return nil, err
		}
		// sqlite stores CURRENT_TIMESTAMP as UTC text.
		e.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
