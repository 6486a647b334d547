package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createProfileTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profile_entries (
		account TEXT PRIMARY KEY,
		token_address TEXT NOT NULL,
		token_id TEXT NOT NULL,
		standard TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE profile_events (
		id TEXT PRIMARY KEY,
		account TEXT NOT NULL,
		event_type TEXT NOT NULL,
		token_address TEXT NOT NULL,
		token_id TEXT NOT NULL,
		standard TEXT NOT NULL,
		previous_token_address TEXT,
		previous_token_id TEXT,
		created_at DATETIME
	);`)
}
