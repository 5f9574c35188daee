package database

import (
	"testing"

	"github.com/lordralex/ballot/api/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSqliteInMemory(t *testing.T) {
	db, err := Open("sqlite", "file:database_test?mode=memory&cache=shared", false)
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	sqlDb, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDb.Stats().MaxOpenConnections)
	_ = sqlDb.Close()
}

func TestOpenUnknownDialect(t *testing.T) {
	_, err := Open("oracle", "", false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestGetIsShared(t *testing.T) {
	env.Set("database.dialect", "sqlite")
	env.Set("database.url", "file:database_get_test?mode=memory&cache=shared")
	defer env.Unset("database.dialect")
	defer env.Unset("database.url")

	first, err := Get()
	require.NoError(t, err)
	second, err := Get()
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, Close())
}
