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

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		settings TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createChatTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE chats (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT 'New Chat',
		model_name TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createMessageTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE messages (
		id TEXT PRIMARY KEY,
		chat_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		model_name TEXT,
		created_at DATETIME
	);`)
}

func createVerificationCodeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE email_verification_codes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		code TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		used BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createChatTable(t, db)
	createMessageTable(t, db)
	createVerificationCodeTable(t, db)
}
