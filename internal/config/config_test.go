package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "interviewlens", cfg.MongoDatabase)
	assert.Equal(t, "interviews", cfg.MongoCollection)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "http://localhost:9000", cfg.TranscriberURL)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 1, cfg.FrameUnitSeconds)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("WORKER_COUNT", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, 5, cfg.WorkerCount)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadYAMLFileWithEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7070\"\nworker_count: 4\nredis_addr: redis:6379\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "6060")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "6060", cfg.Port, "environment beats the file")
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("WORKER_COUNT", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "worker_count")
}

func TestLoadFrameUnitValidation(t *testing.T) {
	t.Setenv("FRAME_UNIT_SECONDS", "-1")
	_, err := Load()
	assert.ErrorContains(t, err, "frame_unit_seconds")
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,,"))
	assert.Nil(t, splitAndTrim(" , "))
}
