package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/healthrecords/internal/flagx"
	"github.com/dmitrijs2005/healthrecords/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero so a file only overrides what it
// names.
type JsonConfig struct {
	Storage       *string `json:"storage"`
	DBPath        *string `json:"db_path"`
	RedisAddr     *string `json:"redis_addr"`
	RedisPassword *string `json:"redis_password"`
	RedisDB       *int    `json:"redis_db"`
	RedisPrefix   *string `json:"redis_prefix"`

	AssetHost    *string `json:"asset_host"`
	CloudName    *string `json:"cloud_name"`
	UploadPreset *string `json:"upload_preset"`
	APIBase      *string `json:"api_base"`
	DeliveryBase *string `json:"delivery_base"`
	BaseFolder   *string `json:"base_folder"`

	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3Endpoint     *string         `json:"s3_endpoint"`
	S3PathStyle    *bool           `json:"s3_path_style"`
	S3PresignValid *timex.Duration `json:"s3_presign_expiry"`

	MaxFiles        *int            `json:"max_files"`
	MaxFileSize     *int64          `json:"max_file_size"`
	UploadTimeout   *timex.Duration `json:"upload_timeout"`
	UploadRetries   *uint64         `json:"upload_retries"`
	TaskExpiry      *timex.Duration `json:"task_expiry"`
	ErrorTaskExpiry *timex.Duration `json:"error_task_expiry"`

	UserID     *string         `json:"user_id"`
	SessionTTL *timex.Duration `json:"session_ttl"`

	DownloadDir *string `json:"download_dir"`
	MetricsFile *string `json:"metrics_file"`
	LogLevel    *string `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file passed
// with -c or -config. Without the flag nothing changes. Read and unmarshal
// errors panic.
//
// S3 keys and the identity secret come from the environment only.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.Storage, jc.Storage)
	set(&cfg.DBPath, jc.DBPath)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisPassword, jc.RedisPassword)
	set(&cfg.RedisDB, jc.RedisDB)
	set(&cfg.RedisPrefix, jc.RedisPrefix)

	set(&cfg.AssetHost, jc.AssetHost)
	set(&cfg.CloudName, jc.CloudName)
	set(&cfg.UploadPreset, jc.UploadPreset)
	set(&cfg.APIBase, jc.APIBase)
	set(&cfg.DeliveryBase, jc.DeliveryBase)
	set(&cfg.BaseFolder, jc.BaseFolder)

	set(&cfg.S3Bucket, jc.S3Bucket)
	set(&cfg.S3Region, jc.S3Region)
	set(&cfg.S3Endpoint, jc.S3Endpoint)
	set(&cfg.S3PathStyle, jc.S3PathStyle)
	setDur(&cfg.S3PresignValid, jc.S3PresignValid)

	set(&cfg.MaxFiles, jc.MaxFiles)
	set(&cfg.MaxFileSize, jc.MaxFileSize)
	setDur(&cfg.UploadTimeout, jc.UploadTimeout)
	set(&cfg.UploadRetries, jc.UploadRetries)
	setDur(&cfg.TaskExpiry, jc.TaskExpiry)
	setDur(&cfg.ErrorTaskExpiry, jc.ErrorTaskExpiry)

	set(&cfg.UserID, jc.UserID)
	setDur(&cfg.SessionTTL, jc.SessionTTL)

	set(&cfg.DownloadDir, jc.DownloadDir)
	set(&cfg.MetricsFile, jc.MetricsFile)
	set(&cfg.LogLevel, jc.LogLevel)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDur(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
