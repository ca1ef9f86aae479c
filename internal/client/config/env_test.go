package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())

	t.Run("process environment", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
		t.Setenv("RECORDS_REDIS_DB", "3")
		t.Setenv("RECORDS_TASK_EXPIRY", "5s")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "demo", cfg.CloudName)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, 5*time.Second, cfg.TaskExpiry)
	})

	t.Run("vite names", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("VITE_CLOUDINARY_CLOUD_NAME", "web-cloud")
		t.Setenv("VITE_CLOUDINARY_UPLOAD_PRESET", "web-preset")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "web-cloud", cfg.CloudName)
		assert.Equal(t, "web-preset", cfg.UploadPreset)
	})

	t.Run("dotenv file from flag", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), "records.env")
		require.NoError(t, os.WriteFile(envFile, []byte("RECORDS_USER=alice\nRECORDS_S3_BUCKET=scans\n"), 0o600))
		t.Cleanup(func() {
			_ = os.Unsetenv("RECORDS_USER")
			_ = os.Unsetenv("RECORDS_S3_BUCKET")
		})
		os.Args = []string{"testbin", "-e", envFile}

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "alice", cfg.UserID)
		assert.Equal(t, "scans", cfg.S3Bucket)
	})

	t.Run("bad number panics", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("RECORDS_REDIS_DB", "three")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("missing dotenv file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", "/does/not/exist.env"}
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
