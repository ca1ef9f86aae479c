package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/client/assethost"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"

	HostCloudinary = "cloudinary"
	HostS3         = "s3"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds runtime settings for the records CLI.
type Config struct {
	// Storage selects the index backend: sqlite, redis or memory.
	Storage       string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// AssetHost selects the upload target: cloudinary or s3.
	AssetHost    string
	CloudName    string
	UploadPreset string
	APIBase      string
	DeliveryBase string
	BaseFolder   string

	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3PathStyle    bool
	S3PresignValid time.Duration

	MaxFiles        int
	MaxFileSize     int64
	UploadTimeout   time.Duration
	UploadRetries   uint64
	TaskExpiry      time.Duration
	ErrorTaskExpiry time.Duration

	UserID         string
	IdentitySecret string
	SessionTTL     time.Duration

	DownloadDir string
	MetricsFile string
	LogLevel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = StorageSQLite
	c.DBPath = "healthrecords.db"
	c.RedisAddr = "127.0.0.1:6379"

	c.AssetHost = HostCloudinary
	c.APIBase = assethost.DefaultAPIBase
	c.DeliveryBase = assethost.DefaultDeliveryBase
	c.BaseFolder = assethost.DefaultFolder

	c.S3Region = "us-east-1"
	c.S3PresignValid = assethost.DefaultPresignExpiry

	c.MaxFiles = 5
	c.MaxFileSize = assethost.MaxFileSize
	c.UploadTimeout = 2 * time.Minute
	c.TaskExpiry = 3 * time.Second
	c.ErrorTaskExpiry = 3 * time.Second

	c.SessionTTL = 24 * time.Hour

	c.DownloadDir = "downloads"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports the first setting the client cannot run with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("%w: sqlite storage needs a database path", ErrInvalid)
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis storage needs an address", ErrInvalid)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalid, c.Storage)
	}

	switch c.AssetHost {
	case HostCloudinary, HostS3:
	default:
		return fmt.Errorf("%w: unknown asset host %q", ErrInvalid, c.AssetHost)
	}

	if c.MaxFiles <= 0 {
		return fmt.Errorf("%w: max files must be positive", ErrInvalid)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max file size must be positive", ErrInvalid)
	}
	if c.TaskExpiry <= 0 {
		return fmt.Errorf("%w: task expiry must be positive", ErrInvalid)
	}
	if c.ErrorTaskExpiry < c.TaskExpiry {
		return fmt.Errorf("%w: error task expiry %s is shorter than task expiry %s", ErrInvalid, c.ErrorTaskExpiry, c.TaskExpiry)
	}
	return nil
}
