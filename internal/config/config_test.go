package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "/uploads", cfg.Storage.URLPrefix)
	assert.Equal(t, "notifications.email", cfg.Queue.Name)
	assert.True(t, cfg.Cache.Caches("get"))
	assert.False(t, cfg.Cache.Caches("POST"))
}

func TestLoadRequiresSecret(t *testing.T) {
	unsetenv(t, "JWT_SECRET")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadFromDotenv(t *testing.T) {
	unsetenv(t, "JWT_SECRET")
	unsetenv(t, "BCRYPT_COST")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nBCRYPT_COST=12\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("JWT_SECRET")
		_ = os.Unsetenv("BCRYPT_COST")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	dir := t.TempDir()

	t.Setenv("BCRYPT_COST", "40")
	_, err := Load(filepath.Join(dir, "x.env"))
	assert.ErrorContains(t, err, "BCRYPT_COST")

	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("STORAGE_DRIVER", "s3")
	_, err = Load(filepath.Join(dir, "x.env"))
	assert.ErrorContains(t, err, "S3_BUCKET")

	t.Setenv("STORAGE_DRIVER", "ftp")
	_, err = Load(filepath.Join(dir, "x.env"))
	assert.ErrorContains(t, err, "STORAGE_DRIVER")

	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("TOKEN_TTL_DAYS", "0")
	_, err = Load(filepath.Join(dir, "x.env"))
	assert.ErrorContains(t, err, "TOKEN_TTL_DAYS")
}

func TestRedisAddress(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: "6380"}.Address())
	assert.Equal(t, "explicit:1", RedisConfig{Addr: "explicit:1", Host: "cache", Port: "6380"}.Address())
	assert.Nil(t, NewRedisClient(RedisConfig{Enabled: false}))
}
