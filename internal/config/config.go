// Package config holds runtime settings for pourlog and their layered
// loading: defaults first, then an optional JSON file, then command-line
// flags. Later sources take precedence.
package config

// Backend selects the durable store for the pour collection.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendJSONFile Backend = "json"
)

// Config holds runtime settings for pourlog.
//
// Local state: DatabasePath (sqlite) or JSONStorePath (blob) depending on
// StoreBackend; PhotoDir is the managed photo directory; ExportDir receives
// exported snapshot files.
//
// Remote side: SnapshotDSN is the Postgres snapshot table; the S3 fields
// configure object storage; TokenPath and TokenSecret feed the token-file
// identity provider.
type Config struct {
	StoreBackend  Backend
	DatabasePath  string
	JSONStorePath string
	PhotoDir      string
	ExportDir     string

	SnapshotDSN string
	TokenPath   string
	TokenSecret string

	S3Region       string
	S3Bucket       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults for a local-only session.
func (c *Config) LoadDefaults() {
	c.StoreBackend = BackendSQLite
	c.DatabasePath = "pours.db"
	c.JSONStorePath = "pours.json"
	c.PhotoDir = "photos"
	c.ExportDir = "exports"
	c.TokenPath = ".pourlog-token"
	c.S3Region = "us-east-1"
	c.S3Bucket = "pourlog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
