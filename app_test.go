package main

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Zayd-McArdle/MasjidApp/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPrepareStorageClosesPoolOnFailure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.ProductionConfig
	}{
		{
			name: "migrations fail",
			cfg:  config.ProductionConfig{Database: config.DatabaseConfig{AutoMigrate: true}},
		},
		{
			name: "cache url invalid",
			cfg: config.ProductionConfig{Cache: config.CacheConfig{
				Enabled:  true,
				Provider: "redis",
				RedisURL: "not a redis url",
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Silent),
			})
			require.NoError(t, err)
			mock.ExpectClose()

			cache, err := prepareStorage(ctx, &tt.cfg, db, zap.NewNop())
			assert.Error(t, err)
			assert.Nil(t, cache)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("cache disabled keeps the pool open", func(t *testing.T) {
		sqlDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqlDB.Close() })
		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		require.NoError(t, err)

		cache, err := prepareStorage(ctx, &config.ProductionConfig{}, db, zap.NewNop())
		require.NoError(t, err)
		assert.Nil(t, cache)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
