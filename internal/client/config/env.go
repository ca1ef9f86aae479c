package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, after loading the
// dotenv file passed with -e/-env or ./.env when that exists. Variables
// already set in the process environment win over the file.
//
// Cloudinary settings are also read under the VITE_ names used by the web
// build, so one .env serves both.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlag(os.Args[1:]); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	str(&cfg.CloudName, "CLOUDINARY_CLOUD_NAME", "VITE_CLOUDINARY_CLOUD_NAME")
	str(&cfg.UploadPreset, "CLOUDINARY_UPLOAD_PRESET", "VITE_CLOUDINARY_UPLOAD_PRESET")

	str(&cfg.Storage, "RECORDS_STORAGE")
	str(&cfg.DBPath, "RECORDS_DB_PATH")
	str(&cfg.RedisAddr, "RECORDS_REDIS_ADDR")
	str(&cfg.RedisPassword, "RECORDS_REDIS_PASSWORD")
	integer(&cfg.RedisDB, "RECORDS_REDIS_DB")

	str(&cfg.AssetHost, "RECORDS_ASSET_HOST")
	str(&cfg.APIBase, "RECORDS_API_BASE")
	str(&cfg.BaseFolder, "RECORDS_FOLDER")

	str(&cfg.S3Bucket, "RECORDS_S3_BUCKET")
	str(&cfg.S3Region, "RECORDS_S3_REGION", "AWS_REGION")
	str(&cfg.S3Endpoint, "RECORDS_S3_ENDPOINT")
	str(&cfg.S3AccessKey, "RECORDS_S3_ACCESS_KEY")
	str(&cfg.S3SecretKey, "RECORDS_S3_SECRET_KEY")

	dur(&cfg.UploadTimeout, "RECORDS_UPLOAD_TIMEOUT")
	dur(&cfg.TaskExpiry, "RECORDS_TASK_EXPIRY")

	str(&cfg.UserID, "RECORDS_USER")
	str(&cfg.IdentitySecret, "RECORDS_IDENTITY_SECRET")
	str(&cfg.LogLevel, "RECORDS_LOG_LEVEL")
}

// str sets *dst from the first non-empty variable in keys.
func str(dst *string, keys ...string) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
			return
		}
	}
}

func integer(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}

func dur(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
