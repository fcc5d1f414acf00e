package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"ADMIN_ID": "42"}))
	require.NoError(t, err)

	want := Default()
	want.AdminID = "42"
	assert.Equal(t, &want, cfg)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"ADMIN_ID":             "42",
		"KABAK_ADDR":           ":9000",
		"STORAGE_TYPE":         "Redis",
		"REDIS_URL":            "redis://cache:6379/1",
		"INACTIVITY_THRESHOLD": "48h",
		"LOG_LEVEL":            "debug",
		"BOLT_PATH":            "  /var/lib/kabak.db  ",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, StorageRedis, cfg.StorageType)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 48*time.Hour, cfg.InactivityThreshold)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "/var/lib/kabak.db", cfg.BoltPath)
}

func TestFromLookup_Errors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "missing admin", vars: map[string]string{}},
		{name: "blank admin", vars: map[string]string{"ADMIN_ID": "  "}},
		{name: "unknown storage", vars: map[string]string{"ADMIN_ID": "1", "STORAGE_TYPE": "mongo"}},
		{name: "redis without url", vars: map[string]string{"ADMIN_ID": "1", "STORAGE_TYPE": "redis"}},
		{name: "bad duration", vars: map[string]string{"ADMIN_ID": "1", "INACTIVITY_THRESHOLD": "a week"}},
		{name: "negative duration", vars: map[string]string{"ADMIN_ID": "1", "INACTIVITY_THRESHOLD": "-1h"}},
		{name: "bad log level", vars: map[string]string{"ADMIN_ID": "1", "LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.vars))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ADMIN_ID=from-file\nKABAK_ADDR=:7000\n"), 0o644))

	t.Setenv("KABAK_ADDR", ":7777")
	t.Setenv("ADMIN_ID", "")
	// godotenv only fills variables that are unset
	require.NoError(t, os.Unsetenv("ADMIN_ID"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.AdminID)
	assert.Equal(t, ":7777", cfg.Addr)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	t.Setenv("ADMIN_ID", "7")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "7", cfg.AdminID)
}
