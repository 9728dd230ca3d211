package config

import (
	"flag"
	"os"

	"github.com/pourlog/pourlog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local database file
//	-p string   path to the managed photo directory
//	-b string   store backend: "sqlite" or "json"
//	-r string   DSN of the remote snapshot table
//
// The function filters os.Args to only the flags it knows about, via
// flagx.FilterArgs, so it never trips over flags owned by other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-p", "-b", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database file")
	fs.StringVar(&cfg.PhotoDir, "p", cfg.PhotoDir, "path to the managed photo directory")
	backend := fs.String("b", string(cfg.StoreBackend), "store backend (sqlite or json)")
	fs.StringVar(&cfg.SnapshotDSN, "r", cfg.SnapshotDSN, "DSN of the remote snapshot table")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StoreBackend = Backend(*backend)
}
