package config

import (
	"encoding/json"
	"os"

	"github.com/pourlog/pourlog/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config only when present, so an omitted field
// keeps its default.
type JsonConfig struct {
	StoreBackend  string `json:"store_backend"`
	DatabasePath  string `json:"database_path"`
	JSONStorePath string `json:"json_store_path"`
	PhotoDir      string `json:"photo_dir"`
	ExportDir     string `json:"export_dir"`

	SnapshotDSN string `json:"snapshot_dsn"`
	TokenPath   string `json:"token_path"`
	TokenSecret string `json:"token_secret"`

	S3Region       string `json:"s3_region"`
	S3Bucket       string `json:"s3_bucket"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags (resolved via flagx.JsonConfigFlags). No flag, no JSON.
// Read or unmarshal failures panic; configuration errors are fatal anyway.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setIf := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	if jc.StoreBackend != "" {
		cfg.StoreBackend = Backend(jc.StoreBackend)
	}
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.JSONStorePath, jc.JSONStorePath)
	setIf(&cfg.PhotoDir, jc.PhotoDir)
	setIf(&cfg.ExportDir, jc.ExportDir)
	setIf(&cfg.SnapshotDSN, jc.SnapshotDSN)
	setIf(&cfg.TokenPath, jc.TokenPath)
	setIf(&cfg.TokenSecret, jc.TokenSecret)
	setIf(&cfg.S3Region, jc.S3Region)
	setIf(&cfg.S3Bucket, jc.S3Bucket)
	setIf(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setIf(&cfg.S3AccessKey, jc.S3AccessKey)
	setIf(&cfg.S3SecretKey, jc.S3SecretKey)
}
