package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/healthrecords/internal/flagx"
)

var knownFlags = []string{
	"-s", "-d", "-redis",
	"-host", "-cloud", "-preset", "-folder",
	"-bucket", "-endpoint",
	"-max-files", "-max-size", "-timeout", "-retries", "-expiry",
	"-u", "-downloads", "-metrics", "-log",
}

// parseFlags populates selected Config fields from command-line flags.
//
//	-s string          index storage: sqlite, redis or memory
//	-d string          sqlite database path
//	-redis string      redis address host:port
//	-host string       asset host: cloudinary or s3
//	-cloud string      cloudinary cloud name
//	-preset string     cloudinary unsigned upload preset
//	-folder string     base upload folder
//	-bucket string     s3 bucket
//	-endpoint string   s3 endpoint for S3-compatible stores
//	-max-files int     files accepted per upload batch
//	-max-size int      per-file limit in bytes
//	-timeout duration  per-file upload timeout
//	-retries int       extra attempts for retryable upload failures
//	-expiry duration   how long finished tasks stay listed
//	-u string          sign in as this user at start
//	-downloads string  download directory
//	-metrics string    write metrics in text format here on exit
//	-log string        log level: debug, info, warn, error
//
// Other arguments are filtered out with flagx.FilterArgs so -c/-e and
// flags owned by other components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "index storage: sqlite, redis or memory")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "sqlite database path")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "redis address")
	fs.StringVar(&cfg.AssetHost, "host", cfg.AssetHost, "asset host: cloudinary or s3")
	fs.StringVar(&cfg.CloudName, "cloud", cfg.CloudName, "cloudinary cloud name")
	fs.StringVar(&cfg.UploadPreset, "preset", cfg.UploadPreset, "cloudinary upload preset")
	fs.StringVar(&cfg.BaseFolder, "folder", cfg.BaseFolder, "base upload folder")
	fs.StringVar(&cfg.S3Bucket, "bucket", cfg.S3Bucket, "s3 bucket")
	fs.StringVar(&cfg.S3Endpoint, "endpoint", cfg.S3Endpoint, "s3 endpoint")
	fs.IntVar(&cfg.MaxFiles, "max-files", cfg.MaxFiles, "files accepted per upload batch")
	fs.Int64Var(&cfg.MaxFileSize, "max-size", cfg.MaxFileSize, "per-file size limit in bytes")
	fs.DurationVar(&cfg.UploadTimeout, "timeout", cfg.UploadTimeout, "per-file upload timeout")
	fs.Uint64Var(&cfg.UploadRetries, "retries", cfg.UploadRetries, "extra attempts for retryable upload failures")
	fs.DurationVar(&cfg.TaskExpiry, "expiry", cfg.TaskExpiry, "how long finished tasks stay listed")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "sign in as this user at start")
	fs.StringVar(&cfg.DownloadDir, "downloads", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.MetricsFile, "metrics", cfg.MetricsFile, "metrics textfile written on exit")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if cfg.ErrorTaskExpiry < cfg.TaskExpiry {
		cfg.ErrorTaskExpiry = cfg.TaskExpiry
	}
}
