package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   uint `gorm:"primarykey"`
	Name string
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{name: "in-memory database", dbPath: ":memory:"},
		{name: "file database in nested directory", dbPath: filepath.Join(t.TempDir(), "nested", "test.db")},
		{name: "empty path falls back to in-memory", dbPath: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)
			require.NoError(t, err)
			require.NotNil(t, conn)
			defer conn.Close()

			assert.Equal(t, DriverSQLite, conn.Driver)
			assert.NoError(t, conn.HealthCheck())
		})
	}
}

func TestOpen_RejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "unknown driver", opts: Options{Driver: "oracle"}},
		{name: "postgres without dsn", opts: Options{Driver: DriverPostgres}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Open(context.Background(), tt.opts)
			assert.Error(t, err)
			assert.Nil(t, conn)
		})
	}
}

func TestDB_HealthCheckAfterClose(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	assert.Error(t, conn.HealthCheck())
}

func TestDB_HealthCheckNil(t *testing.T) {
	var conn *DB
	assert.Error(t, conn.HealthCheck())
}

func TestDB_MigrateStatusDrop(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	status, err := conn.TableStatus(&widget{})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"widgets": false}, status)

	require.NoError(t, conn.AutoMigrate(&widget{}))
	status, err = conn.TableStatus(&widget{})
	require.NoError(t, err)
	assert.True(t, status["widgets"])

	require.NoError(t, conn.DB.Create(&widget{Name: "a"}).Error)

	require.NoError(t, conn.DropAll(&widget{}))
	status, err = conn.TableStatus(&widget{})
	require.NoError(t, err)
	assert.False(t, status["widgets"])
}
