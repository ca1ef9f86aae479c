// Package config loads runtime configuration for the records CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading a dotenv file given with -e or
//     -env (or ./.env when present).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "storage": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "asset_host": "cloudinary",
//	  "cloud_name": "demo",
//	  "upload_preset": "unsigned_records",
//	  "task_expiry": "3s"
//	}
//
// # Environment
//
//	CLOUDINARY_CLOUD_NAME, CLOUDINARY_UPLOAD_PRESET (or VITE_ prefixed)
//	RECORDS_STORAGE, RECORDS_DB_PATH, RECORDS_REDIS_ADDR, RECORDS_REDIS_PASSWORD, RECORDS_REDIS_DB
//	RECORDS_ASSET_HOST, RECORDS_API_BASE, RECORDS_FOLDER
//	RECORDS_S3_BUCKET, RECORDS_S3_REGION (or AWS_REGION), RECORDS_S3_ENDPOINT,
//	RECORDS_S3_ACCESS_KEY, RECORDS_S3_SECRET_KEY
//	RECORDS_UPLOAD_TIMEOUT, RECORDS_TASK_EXPIRY
//	RECORDS_USER, RECORDS_IDENTITY_SECRET, RECORDS_LOG_LEVEL
package config
