package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/spent/internal/config"
	"github.com/theirongolddev/spent/internal/model"
)

var csvHeader = []string{"date", "category", "amount", "description"}

// RowError describes one skipped row from a bulk load.
type RowError struct {
	Row    int // 1-based line number in the file
	Reason string
}

// Ledger owns the in-memory record set for one data file. It is the only
// component that mutates the set; readers get copies.
type Ledger struct {
	path    string
	limits  config.Limits
	records []model.ExpenseRecord
	skipped []RowError
}

// Open resolves a safe path for the named ledger file inside dir and
// returns an empty ledger bound to it. The disk is not touched; call
// Load to read existing records.
func Open(dir, name string, limits config.Limits) (*Ledger, error) {
	path, err := SafePath(dir, name)
	if err != nil {
		return nil, err
	}
	return &Ledger{path: path, limits: limits}, nil
}

// SafePath validates a user-supplied file name and resolves it inside
// dir. Traversal sequences and separators in the name are rejected, and
// a .csv extension is enforced.
func SafePath(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "expenses.csv"
	}
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		name += ".csv"
	}

	if dir == "" {
		dir = "."
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %q: %v", ErrInvalidPath, dir, err)
	}
	path := filepath.Join(absDir, name)
	rel, err := filepath.Rel(absDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %q escapes %q", ErrInvalidPath, name, absDir)
	}
	return path, nil
}

// Path returns the resolved data file path.
func (l *Ledger) Path() string {
	return l.path
}

// Count returns the number of in-memory records.
func (l *Ledger) Count() int {
	return len(l.records)
}

// Records returns a copy of the in-memory record set, in insertion order.
func (l *Ledger) Records() []model.ExpenseRecord {
	out := make([]model.ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Skipped returns the rows skipped by the last Load.
func (l *Ledger) Skipped() []RowError {
	out := make([]RowError, len(l.skipped))
	copy(out, l.skipped)
	return out
}

// Load reads the data file into memory. A missing file yields an empty
// set. Rows that fail the same checks the validator applies are skipped
// and reported via Skipped, never fatal: one corrupt historical row must
// not block access to the rest of the ledger.
func (l *Ledger) Load() error {
	l.records = nil
	l.skipped = nil

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: opening %s: %v", ErrIO, l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			l.skipped = append(l.skipped, RowError{Row: line, Reason: err.Error()})
			continue
		}
		if line == 1 && isHeaderRow(row) {
			continue
		}
		if len(row) != len(csvHeader) {
			l.skipped = append(l.skipped, RowError{Row: line, Reason: fmt.Sprintf("expected %d fields, got %d", len(csvHeader), len(row))})
			continue
		}

		rec, err := Validate(RecordInput{
			Date:        row[0],
			Category:    row[1],
			Amount:      row[2],
			Description: row[3],
		}, l.limits)
		if err != nil {
			l.skipped = append(l.skipped, RowError{Row: line, Reason: err.Error()})
			continue
		}
		if len(l.records) >= l.limits.MaxExpenseRecords {
			l.skipped = append(l.skipped, RowError{Row: line, Reason: ErrRecordLimit.Error()})
			continue
		}
		l.records = append(l.records, rec)
	}

	return nil
}

// Append adds a validated record to the in-memory set. It does not
// persist; call Save. Fails when the set is at capacity.
func (l *Ledger) Append(rec model.ExpenseRecord) error {
	if len(l.records) >= l.limits.MaxExpenseRecords {
		return fmt.Errorf("%w: ledger holds %d records", ErrRecordLimit, l.limits.MaxExpenseRecords)
	}
	l.records = append(l.records, rec)
	return nil
}

// Save writes the full in-memory set to the data file atomically: the
// rows go to a temp file in the same directory which then replaces the
// target, so a crash mid-write leaves either the old or the new file,
// never a truncated mix. The saved file is owner read/write only. On
// failure the in-memory set is untouched so the caller can retry.
func (l *Ledger) Save() error {
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmpPath != "" {
			_ = os.Remove(tmpPath)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing header: %v", ErrIO, err)
	}
	for _, rec := range l.records {
		row := []string{
			rec.DateString(),
			rec.Category,
			rec.Amount.StringFixed(2),
			rec.Description,
		}
		if err := w.Write(row); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("%w: writing row: %v", ErrIO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: flushing rows: %v", ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: syncing temp file: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", ErrIO, err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("%w: setting permissions: %v", ErrIO, err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrIO, l.path, err)
	}
	tmpPath = ""
	return nil
}

// ExportReport writes a category breakdown to path with the same columns
// the on-screen analysis table shows. Full per-category rows, no "Other"
// bucket: the merge is a chart-only projection.
func ExportReport(path string, stats []model.CategoryStat) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"category", "total_amount", "transaction_count", "percentage"}); err != nil {
		return fmt.Errorf("%w: writing header: %v", ErrIO, err)
	}
	for _, cs := range stats {
		row := []string{
			cs.Label,
			cs.Total.StringFixed(2),
			fmt.Sprintf("%d", cs.Count),
			fmt.Sprintf("%.2f", cs.Percent),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%w: writing row: %v", ErrIO, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flushing rows: %v", ErrIO, err)
	}
	return nil
}

// Stat returns the data file's mtime in nanoseconds and its size, for
// cache freshness checks. A missing file reports (0, 0, nil).
func (l *Ledger) Stat() (mtimeNs, size int64, err error) {
	fi, err := os.Stat(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("%w: stat %s: %v", ErrIO, l.path, err)
	}
	return fi.ModTime().UnixNano(), fi.Size(), nil
}

// SetRecords replaces the in-memory set wholesale. Used by the cache
// path, which hands back records that were validated when first parsed.
func (l *Ledger) SetRecords(records []model.ExpenseRecord, skipped []RowError) {
	l.records = records
	l.skipped = skipped
}

func isHeaderRow(row []string) bool {
	if len(row) != len(csvHeader) {
		return false
	}
	for i, field := range row {
		if !strings.EqualFold(strings.TrimSpace(field), csvHeader[i]) {
			return false
		}
	}
	return true
}
