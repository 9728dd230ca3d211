package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"pourlog"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "pours.db", cfg.DatabasePath)
	assert.Equal(t, "photos", cfg.PhotoDir)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Empty(t, cfg.SnapshotDSN)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-d", "/data/pours.db", "-p", "/data/photos", "-b", "json", "-r", "postgres://remote/pours")

	cfg := LoadConfig()
	assert.Equal(t, "/data/pours.db", cfg.DatabasePath)
	assert.Equal(t, "/data/photos", cfg.PhotoDir)
	assert.Equal(t, BackendJSONFile, cfg.StoreBackend)
	assert.Equal(t, "postgres://remote/pours", cfg.SnapshotDSN)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"photo_dir": "/json/photos",
		"s3_bucket": "my-pours",
		"snapshot_dsn": "postgres://json/pours"
	}`), 0o660))

	withArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "/json/photos", cfg.PhotoDir)
	assert.Equal(t, "my-pours", cfg.S3Bucket)
	assert.Equal(t, "postgres://json/pours", cfg.SnapshotDSN)
	// Untouched fields keep their defaults.
	assert.Equal(t, "pours.db", cfg.DatabasePath)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"photo_dir": "/json/photos"}`), 0o660))

	withArgs(t, "-c", path, "-p", "/flag/photos")

	cfg := LoadConfig()
	assert.Equal(t, "/flag/photos", cfg.PhotoDir)
}
