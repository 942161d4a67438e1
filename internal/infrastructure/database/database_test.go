package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, db *gorm.DB, table string) []foreignKey {
	t.Helper()
	var fks []foreignKey
	require.NoError(t, db.Raw("PRAGMA foreign_key_list(" + table + ")").Scan(&fks).Error)
	return fks
}

func setupDB(t *testing.T) *gorm.DB {
	db, err := OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestAutoMigrate_ForeignKeysPointAtListings(t *testing.T) {
	db := setupDB(t)

	assert.Empty(t, foreignKeys(t, db, "listings"))
	assert.Empty(t, foreignKeys(t, db, "listing_events"))

	for _, table := range []string{"bookings", "reviews"} {
		fks := foreignKeys(t, db, table)
		require.Len(t, fks, 1, table)
		assert.Equal(t, foreignKey{Table: "listings", From: "listing_id", To: "listing_id", OnDelete: "CASCADE"}, fks[0], table)
	}
}

func TestOpenSQLite_EnforcesForeignKeys(t *testing.T) {
	db := setupDB(t)

	var on int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&on).Error)
	assert.Equal(t, 1, on)

	err := db.Exec(`INSERT INTO reviews (review_id, listing_id, guest_name, rating, created_at)
		VALUES ('r1', 'missing', 'Ada', 5, CURRENT_TIMESTAMP)`).Error
	assert.Error(t, err)
}

func TestPinger(t *testing.T) {
	db := setupDB(t)
	assert.NoError(t, (&Pinger{DB: db}).Ping())
	assert.NoError(t, (*Pinger)(nil).Ping())
}

func TestOpen_SQLitePrefix(t *testing.T) {
	db, err := Open(SQLitePrefix + ":memory:")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())
}
