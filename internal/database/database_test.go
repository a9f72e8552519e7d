package database

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           50,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("db", "5432", "bucovina", "secret", "bucovinastay", "")
	assert.Equal(t, "host=db port=5432 user=bucovina password=secret dbname=bucovinastay sslmode=disable", dsn)

	dsn = buildDSN("db", "5432", "u", "p", "n", "verify-full")
	assert.Contains(t, dsn, "sslmode=verify-full")
}

func TestGetReadDB_FallsBackToPrimary(t *testing.T) {
	primary, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	oldDB, oldRead := DB, ReadDB
	t.Cleanup(func() { DB, ReadDB = oldDB, oldRead })

	DB, ReadDB = primary, nil
	assert.Same(t, primary, GetReadDB())

	replica, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	ReadDB = replica
	assert.Same(t, replica, GetReadDB())
}

func TestCustomGormLogger_LogModeCopies(t *testing.T) {
	base := NewGormLogger(slog.Default())
	verbose := base.LogMode(logger.Info).(*CustomGormLogger)

	assert.Equal(t, logger.Warn, base.Config.LogLevel)
	assert.Equal(t, logger.Info, verbose.Config.LogLevel)

	// Silent must not invoke the SQL callback.
	silent := base.LogMode(logger.Silent)
	silent.Trace(context.Background(), time.Now(), func() (string, int64) {
		t.Fatal("callback should not run when silent")
		return "", 0
	}, nil)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", firstNonEmpty("", "b", "c"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
