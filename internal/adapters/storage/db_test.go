package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TestInitDB_CreatesTables verifies all expected tables exist after init.
func TestInitDB_CreatesTables(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	want := []string{"attendance", "participants", "sessions", "settings"}
	got := getTableNames(t, db)
	if len(got) != len(want) {
		t.Fatalf("tables %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("table[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestInitDB_Idempotent verifies a second init leaves the schema intact.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if _, err := db.Exec("INSERT INTO settings (key, value) VALUES ('church_name', '성당')"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
	var value string
	if err := db.QueryRow("SELECT value FROM settings WHERE key = 'church_name'").Scan(&value); err != nil {
		t.Fatalf("query after re-init: %v", err)
	}
	if value != "성당" {
		t.Errorf("value %q after re-init", value)
	}
}

// TestAttendanceUniqueConstraint verifies the duplicate check-in guard lives
// in the schema itself.
func TestAttendanceUniqueConstraint(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	insert := `INSERT INTO attendance (id, session_id, session_title, participant_id, name, checked_in_at)
		VALUES (?, 's1', '주일미사', 'p1', '김철수', '2024-06-02 10:30')`
	if _, err := db.Exec(insert, "a1"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Exec(insert, "a2"); err == nil {
		t.Error("second insert for same (session, participant) succeeded")
	}
}
