package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "attachments", cfg.Storage.Bucket)
	assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
	assert.Empty(t, cfg.Redis.Addr, "sin REDIS_ADDR la caché queda deshabilitada")
}

func TestLoad_BucketDesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE_BUCKET", "agency-files")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_PATH_STYLE", "false")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "agency-files", cfg.Storage.Bucket)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Storage.UsePathStyle)
}

func TestLoad_ProduccionSinSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "finans", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/finans?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestStorageConfig_Enabled(t *testing.T) {
	assert.False(t, StorageConfig{Bucket: "b"}.Enabled())
	assert.True(t, StorageConfig{Bucket: "b", AccessKey: "a", SecretKey: "s"}.Enabled())
}
