package db

import (
	"database/sql"
	"testing"
)

func tableExists(t *testing.T, d *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := d.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return n > 0
}

func TestOpenAppliesMigrations(t *testing.T) {
	d, err := Open("file:db_migrate?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	for _, table := range []string{"users", "vendors", "deliveries", "tracking_updates", "notifications", "payments"} {
		if !tableExists(t, d, table) {
			t.Errorf("table %s missing after migrations", table)
		}
	}

	var maxVersion int
	if err := d.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&maxVersion); err != nil {
		t.Fatalf("schema_migrations: %v", err)
	}
	if maxVersion != 2 {
		t.Errorf("expected migration version 2, got %d", maxVersion)
	}
}

func TestRollbackLastAndReapply(t *testing.T) {
	d, err := Open("file:db_rollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if tableExists(t, d, "payments") {
		t.Error("payments table should be gone after rollback")
	}
	if !tableExists(t, d, "deliveries") {
		t.Error("rollback should only revert the last migration")
	}

	if err := applyMigrations(d); err != nil {
		t.Fatalf("reapply: %v", err)
	}
	if !tableExists(t, d, "payments") {
		t.Error("payments table should be back after reapply")
	}
}

func TestRollbackOnEmptyDatabase(t *testing.T) {
	d, err := Open("file:db_empty_rb?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback 2: %v", err)
	}
	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback 1: %v", err)
	}
	// Nothing left to roll back; no error.
	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback on empty: %v", err)
	}
}
