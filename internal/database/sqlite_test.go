package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestDB(t *testing.T) *sql.DB {
	t.Helper()
	require.NoError(t, Init(Config{Path: filepath.Join(t.TempDir(), "test.db")}))
	db := GetDB()
	require.NoError(t, Migrate(db))
	return db
}

func TestTransactionRollsBackOnPanic(t *testing.T) {
	db := initTestDB(t)

	require.Panics(t, func() {
		_ = Transaction(func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				INSERT INTO species (id, common_name, scientific_name, type, conservation_status)
				VALUES ('doomed', 'Doomed', 'Doomed', 'mammal', 'threatened')`)
			require.NoError(t, err)
			panic("mid-transaction failure")
		})
	})

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM species WHERE id = 'doomed'").Scan(&count))
	assert.Zero(t, count, "the panicked transaction must not commit")

	// The write lock was released: a follow-up transaction commits normally.
	require.NoError(t, Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO species (id, common_name, scientific_name, type, conservation_status)
			VALUES ('kept', 'Kept', 'Kept', 'fish', 'threatened')`)
		return err
	}))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM species WHERE id = 'kept'").Scan(&count))
	assert.Equal(t, 1, count)
}
