// Package store provides a SQLite-backed cache of parsed ledger files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spent/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache stores parsed records per data file, keyed by the file's mtime
// and size, so repeat invocations skip the CSV parse.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached records for path when the stored mtime and
// size still match. ok is false on a stale or missing entry.
func (c *Cache) Lookup(path string, mtimeNs, sizeBytes int64) (records []model.ExpenseRecord, skippedRows int, ok bool, err error) {
	var storedMtime, storedSize int64
	row := c.db.QueryRow("SELECT mtime_ns, size_bytes, skipped_rows FROM files WHERE file_path = ?", path)
	if err := row.Scan(&storedMtime, &storedSize, &skippedRows); err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, false, nil
		}
		return nil, 0, false, err
	}
	if storedMtime != mtimeNs || storedSize != sizeBytes {
		return nil, 0, false, nil
	}

	rows, err := c.db.Query(`SELECT date, category, amount, description
		FROM records WHERE file_path = ? ORDER BY seq`, path)
	if err != nil {
		return nil, 0, false, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var dateStr, category, amountStr, description string
		if err := rows.Scan(&dateStr, &category, &amountStr, &description); err != nil {
			return nil, 0, false, err
		}
		date, err := time.Parse(model.DateFormat, dateStr)
		if err != nil {
			return nil, 0, false, fmt.Errorf("corrupt cached date %q: %w", dateStr, err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, 0, false, fmt.Errorf("corrupt cached amount %q: %w", amountStr, err)
		}
		records = append(records, model.ExpenseRecord{
			Date:        date,
			Category:    category,
			Amount:      amount,
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, false, err
	}
	return records, skippedRows, true, nil
}

// Store replaces the cached entry for path with the given parse result.
func (c *Cache) Store(path string, mtimeNs, sizeBytes int64, records []model.ExpenseRecord, skippedRows int) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO files
		(file_path, mtime_ns, size_bytes, skipped_rows, parsed_at)
		VALUES (?, ?, ?, ?, ?)`,
		path, mtimeNs, sizeBytes, skippedRows, now,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM records WHERE file_path = ?", path); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO records
		(file_path, seq, date, category, amount, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		_, err := stmt.Exec(path, i, rec.DateString(), rec.Category, rec.Amount.StringFixed(2), rec.Description)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Invalidate drops the cached entry for path.
func (c *Cache) Invalidate(path string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM records WHERE file_path = ?", path); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM files WHERE file_path = ?", path); err != nil {
		return err
	}
	return tx.Commit()
}
