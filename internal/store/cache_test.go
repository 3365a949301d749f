package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spent/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func cacheRecords(t *testing.T) []model.ExpenseRecord {
	t.Helper()
	d, err := time.Parse(model.DateFormat, "12-06-2025")
	if err != nil {
		t.Fatal(err)
	}
	return []model.ExpenseRecord{
		{Date: d, Category: "Rent", Amount: decimal.RequireFromString("5000.00"), Description: "June Rent"},
		{Date: d.AddDate(0, 0, -1), Category: "Food", Amount: decimal.RequireFromString("200.00"), Description: "Groceries"},
	}
}

func TestCache_StoreLookup(t *testing.T) {
	c := openTestCache(t)
	records := cacheRecords(t)

	if err := c.Store("/data/expenses.csv", 100, 2048, records, 3); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, skipped, ok, err := c.Lookup("/data/expenses.csv", 100, 2048)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !ok {
		t.Fatal("Lookup miss for a fresh entry")
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if !got[i].Equal(records[i]) {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestCache_StaleEntryMisses(t *testing.T) {
	c := openTestCache(t)
	if err := c.Store("/data/expenses.csv", 100, 2048, cacheRecords(t), 0); err != nil {
		t.Fatal(err)
	}

	// Changed mtime.
	if _, _, ok, err := c.Lookup("/data/expenses.csv", 200, 2048); err != nil || ok {
		t.Errorf("mtime change: ok = %v, err = %v, want miss", ok, err)
	}
	// Changed size.
	if _, _, ok, err := c.Lookup("/data/expenses.csv", 100, 4096); err != nil || ok {
		t.Errorf("size change: ok = %v, err = %v, want miss", ok, err)
	}
	// Unknown path.
	if _, _, ok, err := c.Lookup("/data/other.csv", 100, 2048); err != nil || ok {
		t.Errorf("unknown path: ok = %v, err = %v, want miss", ok, err)
	}
}

func TestCache_StoreReplaces(t *testing.T) {
	c := openTestCache(t)
	records := cacheRecords(t)

	if err := c.Store("/data/expenses.csv", 100, 2048, records, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Store("/data/expenses.csv", 200, 1024, records[:1], 1); err != nil {
		t.Fatal(err)
	}

	got, skipped, ok, err := c.Lookup("/data/expenses.csv", 200, 1024)
	if err != nil || !ok {
		t.Fatalf("Lookup after replace: ok = %v, err = %v", ok, err)
	}
	if len(got) != 1 || skipped != 1 {
		t.Errorf("got %d records, %d skipped; want 1 and 1", len(got), skipped)
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := openTestCache(t)
	if err := c.Store("/data/expenses.csv", 100, 2048, cacheRecords(t), 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Invalidate("/data/expenses.csv"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if _, _, ok, err := c.Lookup("/data/expenses.csv", 100, 2048); err != nil || ok {
		t.Errorf("after invalidate: ok = %v, err = %v, want miss", ok, err)
	}
}
