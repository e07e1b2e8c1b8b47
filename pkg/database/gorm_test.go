package database

import (
	"path/filepath"
	"testing"

	"supercharged-notes-be/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGormDBFromDSN_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")

	db, err := NewGormDBFromDSN(sqlitePrefix + path)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.True(t, db.Migrator().HasTable("quiz_questions"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
