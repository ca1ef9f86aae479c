package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"storage":        "redis",
		"redis_addr":     "cache:6379",
		"upload_preset":  "unsigned",
		"task_expiry":    "10s",
		"upload_retries": 2,
		"s3_path_style":  true,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, StorageRedis, cfg.Storage)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, "unsigned", cfg.UploadPreset)
		assert.Equal(t, 10*time.Second, cfg.TaskExpiry)
		assert.EqualValues(t, 2, cfg.UploadRetries)
		assert.True(t, cfg.S3PathStyle)
		// absent keys keep their values
		assert.Equal(t, "healthrecords.db", cfg.DBPath)
		assert.Equal(t, 5, cfg.MaxFiles)
	})

	t.Run("no flags → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{Storage: "defaults", TaskExpiry: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "defaults", cfg.Storage)
		assert.Equal(t, 42*time.Second, cfg.TaskExpiry)
	})

	t.Run("nanosecond durations", func(t *testing.T) {
		p := writeTempJSON(t, dir, "ns.json", map[string]any{"upload_timeout": int64(5 * time.Second)})
		os.Args = []string{"testbin", "-c=" + p}

		cfg := &Config{}
		parseJson(cfg)
		assert.Equal(t, 5*time.Second, cfg.UploadTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
