package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/pourlog/pourlog/internal/bridge"
	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/config"
	"github.com/pourlog/pourlog/internal/derive"
	"github.com/pourlog/pourlog/internal/export"
	"github.com/pourlog/pourlog/internal/logging"
	"github.com/pourlog/pourlog/internal/photodir"
	"github.com/pourlog/pourlog/internal/remote"
	"github.com/pourlog/pourlog/internal/store"
	"github.com/pourlog/pourlog/internal/store/records"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// App wires the configured backends together and exposes the interactive
// command handlers the REPL dispatches to.
type App struct {
	config   *config.Config
	store    *store.Store
	dir      *photodir.Dir
	exporter *export.Exporter
	log      logging.Logger
	reader   *bufio.Reader

	// built on first remote command, so local-only sessions never touch
	// the network
	bridge *bridge.Bridge
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dir := photodir.New(c.PhotoDir)
	if err := dir.Ensure(); err != nil {
		return nil, err
	}

	var persist store.Persistence
	switch c.StoreBackend {
	case config.BackendJSONFile:
		persist = records.NewJSONFileRepository(c.JSONStorePath)
	default:
		db, err := records.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			return nil, err
		}
		persist = records.NewSQLiteRepository(db)
	}

	st := store.New(persist, derive.New(dir), log)
	if err := st.Open(ctx); err != nil {
		return nil, err
	}

	return &App{
		config:   c,
		store:    st,
		dir:      dir,
		exporter: export.New(st, c.ExportDir),
		log:      log.With("component", "cli"),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the interactive loop and blocks until the user exits or
// stdin is closed.
func (a *App) Run(ctx context.Context) {
	printlnFn("pourlog (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	return fmt.Sprintf("%d pours", len(a.store.All()))
}

// ensureBridge builds the remote side on first use. Remote commands fail
// with ErrPrecondition when no snapshot DSN is configured.
func (a *App) ensureBridge(ctx context.Context) (*bridge.Bridge, error) {
	if a.bridge != nil {
		return a.bridge, nil
	}
	if a.config.SnapshotDSN == "" {
		return nil, fmt.Errorf("%w: remote sync is not configured", common.ErrPrecondition)
	}

	objects, err := remote.NewS3ObjectStorage(ctx, remote.S3Config{
		Region:       a.config.S3Region,
		Bucket:       a.config.S3Bucket,
		BaseEndpoint: a.config.S3BaseEndpoint,
		AccessKey:    a.config.S3AccessKey,
		SecretKey:    a.config.S3SecretKey,
	})
	if err != nil {
		return nil, err
	}

	db, err := remote.OpenPostgres(ctx, a.config.SnapshotDSN)
	if err != nil {
		return nil, err
	}
	snapshots := remote.NewPostgresSnapshotRepository(db)
	if err := snapshots.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	identity := remote.NewTokenFileIdentity(a.config.TokenPath, []byte(a.config.TokenSecret))

	a.bridge = bridge.New(a.store, a.dir, objects, snapshots, identity, a.log)
	return a.bridge, nil
}
