package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/theirongolddev/spent/internal/config"
	"github.com/theirongolddev/spent/internal/model"
)

// mustRecord builds a validated record or fails the test.
func mustRecord(t *testing.T, date, category, amount, description string) model.ExpenseRecord {
	t.Helper()
	rec, err := Validate(RecordInput{
		Date: date, Category: category, Amount: amount, Description: description,
	}, testLimits())
	if err != nil {
		t.Fatalf("building record: %v", err)
	}
	return rec
}

func openTestLedger(t *testing.T, limits config.Limits) *Ledger {
	t.Helper()
	led, err := Open(t.TempDir(), "expenses.csv", limits)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return led
}

func TestSafePath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"expenses.csv", false},
		{"expenses", false}, // .csv appended
		{"My Budget.CSV", false},
		{"../escape.csv", true},
		{"a/b.csv", true},
		{"..", true},
	}

	for _, tt := range tests {
		path, err := SafePath(dir, tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPath) {
				t.Errorf("SafePath(%q): err = %v, want ErrInvalidPath", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("SafePath(%q): unexpected error %v", tt.name, err)
			continue
		}
		if !strings.HasPrefix(path, dir) {
			t.Errorf("SafePath(%q) = %q, escapes %q", tt.name, path, dir)
		}
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			t.Errorf("SafePath(%q) = %q, want .csv extension", tt.name, path)
		}
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	led := openTestLedger(t, testLimits())
	if err := led.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if led.Count() != 0 || len(led.Skipped()) != 0 {
		t.Errorf("Count = %d, Skipped = %d, want empty set", led.Count(), len(led.Skipped()))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	led := openTestLedger(t, testLimits())

	// Amounts cover whole, one- and two-decimal forms: every amount the
	// validator accepts must survive the two-decimal storage format.
	records := []model.ExpenseRecord{
		mustRecord(t, "12-06-2025", "Rent", "5000.00", "June Rent"),
		mustRecord(t, "11-06-2025", "Transport", "50", "Rickshaw fare"),
		mustRecord(t, "10-06-2025", "Food", "200.5", "Groceries, milk"),
		mustRecord(t, "09-06-2025", "Food", "12.34", "Tea"),
	}
	for _, rec := range records {
		if err := led.Append(rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := led.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Open(filepath.Dir(led.Path()), filepath.Base(led.Path()), testLimits())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n := len(reloaded.Skipped()); n != 0 {
		t.Fatalf("Skipped = %d, want 0: %v", n, reloaded.Skipped())
	}

	got := reloaded.Records()
	if len(got) != len(records) {
		t.Fatalf("reloaded %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if !got[i].Equal(records[i]) {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestSave_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	led := openTestLedger(t, testLimits())
	if err := led.Append(mustRecord(t, "12-06-2025", "Rent", "5000", "")); err != nil {
		t.Fatal(err)
	}
	if err := led.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fi, err := os.Stat(led.Path())
	if err != nil {
		t.Fatal(err)
	}
	if perm := fi.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	led := openTestLedger(t, testLimits())
	if err := led.Append(mustRecord(t, "12-06-2025", "Rent", "5000", "")); err != nil {
		t.Fatal(err)
	}
	if err := led.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(led.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only the data file", names)
	}
}

func TestLoad_SkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	content := strings.Join([]string{
		"date,category,amount,description",
		"12-06-2025,Rent,5000.00,June Rent",
		"not-a-date,Food,10.00,bad date",
		"11-06-2025,Transport,-50.00,negative amount",
		"11-06-2025,Transport",
		"10-06-2025,Food,200.00,Groceries",
	}, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "expenses.csv"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	led, err := Open(dir, "expenses.csv", testLimits())
	if err != nil {
		t.Fatal(err)
	}
	if err := led.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if led.Count() != 2 {
		t.Errorf("Count = %d, want 2 good rows", led.Count())
	}
	if n := len(led.Skipped()); n != 3 {
		t.Errorf("Skipped = %d, want 3: %v", n, led.Skipped())
	}
}

func TestAppend_RecordLimit(t *testing.T) {
	limits := testLimits()
	limits.MaxExpenseRecords = 3

	led := openTestLedger(t, limits)
	for i := 0; i < 3; i++ {
		rec := mustRecord(t, fmt.Sprintf("%02d-06-2025", i+1), "Food", "10", "")
		if err := led.Append(rec); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	err := led.Append(mustRecord(t, "04-06-2025", "Food", "10", ""))
	if !errors.Is(err, ErrRecordLimit) {
		t.Errorf("err = %v, want ErrRecordLimit", err)
	}
	if led.Count() != 3 {
		t.Errorf("Count = %d, want capped at 3", led.Count())
	}
}

func TestLoad_RecordLimit(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("date,category,amount,description\n")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "%02d-06-2025,Food,10.00,row\n", i+1)
	}
	if err := os.WriteFile(filepath.Join(dir, "expenses.csv"), []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}

	limits := testLimits()
	limits.MaxExpenseRecords = 3
	led, err := Open(dir, "expenses.csv", limits)
	if err != nil {
		t.Fatal(err)
	}
	if err := led.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if led.Count() != 3 {
		t.Errorf("Count = %d, want capped at 3", led.Count())
	}
	if n := len(led.Skipped()); n != 2 {
		t.Errorf("Skipped = %d, want 2 overflow rows", n)
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	led := openTestLedger(t, testLimits())
	if err := led.Append(mustRecord(t, "12-06-2025", "Rent", "5000", "")); err != nil {
		t.Fatal(err)
	}

	view := led.Records()
	view[0].Category = "Tampered"

	if led.Records()[0].Category != "Rent" {
		t.Error("mutating the returned slice changed the store's records")
	}
}

func TestExportReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expense_summary.csv")

	stats := []model.CategoryStat{
		{Label: "Rent", Total: mustRecord(t, "12-06-2025", "Rent", "5000", "").Amount, Count: 1, Percent: 89.46},
		{Label: "Food", Total: mustRecord(t, "10-06-2025", "Food", "339", "").Amount, Count: 2, Percent: 6.07},
	}
	if err := ExportReport(path, stats); err != nil {
		t.Fatalf("ExportReport: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "category,total_amount,transaction_count,percentage\n" +
		"Rent,5000.00,1,89.46\n" +
		"Food,339.00,2,6.07\n"
	if string(data) != want {
		t.Errorf("report = %q, want %q", data, want)
	}
}
