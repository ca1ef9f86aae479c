package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/client/assethost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, StorageSQLite, c.Storage)
	assert.Equal(t, HostCloudinary, c.AssetHost)
	assert.Equal(t, 5, c.MaxFiles)
	assert.Equal(t, assethost.MaxFileSize, c.MaxFileSize)
	assert.Equal(t, 3*time.Second, c.TaskExpiry)
	assert.Equal(t, assethost.DefaultFolder, c.BaseFolder)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Chdir(t.TempDir())

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "healthrecords.db", cfg.DBPath)
	assert.Equal(t, 3*time.Second, cfg.TaskExpiry)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Chdir(t.TempDir())

	t.Setenv("RECORDS_STORAGE", "memory")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "env-cloud")
	path := writeTempJSON(t, "", "", map[string]any{"cloud_name": "json-cloud", "max_files": 3})
	os.Args = []string{"testbin", "-c", path, "-max-files", "2"}

	cfg := LoadConfig()

	assert.Equal(t, StorageMemory, cfg.Storage, "env over defaults")
	assert.Equal(t, "json-cloud", cfg.CloudName, "json over env")
	assert.Equal(t, 2, cfg.MaxFiles, "flags over json")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, ok: true},
		{name: "memory", mutate: func(c *Config) { c.Storage = StorageMemory; c.DBPath = "" }, ok: true},
		{name: "redis without addr", mutate: func(c *Config) { c.Storage = StorageRedis; c.RedisAddr = "" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.DBPath = "" }},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage = "etcd" }},
		{name: "unknown host", mutate: func(c *Config) { c.AssetHost = "ftp" }},
		{name: "s3", mutate: func(c *Config) { c.AssetHost = HostS3 }, ok: true},
		{name: "zero max files", mutate: func(c *Config) { c.MaxFiles = 0 }},
		{name: "zero max size", mutate: func(c *Config) { c.MaxFileSize = 0 }},
		{name: "zero expiry", mutate: func(c *Config) { c.TaskExpiry = 0 }},
		{name: "error expiry shorter", mutate: func(c *Config) { c.ErrorTaskExpiry = time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}
