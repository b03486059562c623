package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSQLite_SingleConnection(t *testing.T) {
	db, err := InitSQLite("file:database_test?mode=memory&cache=shared")
	require.NoError(t, err)
	defer Close(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	assert.True(t, db.Config.TranslateError, "必须开启错误翻译才能识别唯一索引冲突")
}
