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

func createRecordStoreTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_records (
		address TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT 'Unnamed',
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE transaction_records (
		hash TEXT PRIMARY KEY,
		from_address TEXT NOT NULL,
		to_address TEXT NOT NULL,
		amount REAL NOT NULL,
		block_number INTEGER,
		timestamp DATETIME NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_transactions (
		user_address TEXT NOT NULL,
		tx_hash TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (user_address, tx_hash)
	);`)
}
