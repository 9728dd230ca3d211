package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/logging"
	"github.com/pourlog/pourlog/internal/models"
	"github.com/pourlog/pourlog/internal/photodir"
	"github.com/pourlog/pourlog/internal/store"
)

// User is the resolved identity that namespaces remote keys and owns
// snapshot rows.
type User struct {
	ID    string
	Email string
}

// ObjectStorage receives photo bytes and hands back public locators.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader) error
	PublicURL(key string) string
}

// SnapshotTable stores whole-dataset snapshots per user, append-only.
type SnapshotTable interface {
	Insert(ctx context.Context, userID string, data []byte) error

	// LatestByUser returns the newest snapshot payload, or common.ErrNotFound
	// when the user never pushed one.
	LatestByUser(ctx context.Context, userID string) ([]byte, error)
}

// Identity resolves the current user. Implementations report
// common.ErrAuthRequired when no identity is available.
type Identity interface {
	CurrentUser(ctx context.Context) (*User, error)
}

// Bridge moves locally sourced photo bytes to object storage and exchanges
// whole-dataset snapshots with the remote table. The record store never
// learns about the remote backend; the bridge calls back into it through its
// public operations.
type Bridge struct {
	store     *store.Store
	dir       *photodir.Dir
	objects   ObjectStorage
	snapshots SnapshotTable
	identity  Identity
	log       logging.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func New(st *store.Store, dir *photodir.Dir, objects ObjectStorage, snapshots SnapshotTable, identity Identity, log logging.Logger) *Bridge {
	return &Bridge{
		store:     st,
		dir:       dir,
		objects:   objects,
		snapshots: snapshots,
		identity:  identity,
		log:       log.With("component", "bridge"),
		inflight:  make(map[string]struct{}),
	}
}

// UploadPendingPhotos uploads every record whose photo is still local and
// rewrites its reference to the resulting public locator.
//
// Items are independent: one failed upload never aborts the others; failures
// are collected and returned together after the batch completes, each
// wrapping common.ErrUpload. A failed record keeps its local photo and stays
// eligible for the next trigger. Records already being uploaded by an
// overlapping trigger are skipped, so no record races an upload with itself.
func (b *Bridge) UploadPendingPhotos(ctx context.Context) error {
	user, err := b.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}

	var pending []models.PourRecord
	for _, rec := range b.store.All() {
		if rec.Photo.IsLocal() {
			pending = append(pending, rec)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	b.log.Info(ctx, "uploading pending photos", "count", len(pending))

	var (
		wg   sync.WaitGroup
		emu  sync.Mutex
		errs error
	)
	for _, rec := range pending {
		if !b.claim(rec.ID) {
			b.log.Debug(ctx, "upload already in flight", "id", rec.ID)
			continue
		}
		wg.Add(1)
		go func(rec models.PourRecord) {
			defer wg.Done()
			defer b.release(rec.ID)
			if err := b.uploadOne(ctx, user, rec); err != nil {
				b.log.Error(ctx, "photo upload failed", "id", rec.ID, "error", err)
				emu.Lock()
				errs = multierr.Append(errs, err)
				emu.Unlock()
			}
		}(rec)
	}
	wg.Wait()
	return errs
}

func (b *Bridge) uploadOne(ctx context.Context, user *User, rec models.PourRecord) error {
	f, err := os.Open(b.dir.PathFor(rec.Photo))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrUpload, rec.ID, err)
	}
	defer f.Close()

	key := storageKey(user.ID)
	if err := b.objects.Upload(ctx, key, f); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrUpload, rec.ID, err)
	}

	url := b.objects.PublicURL(key)
	if err := b.store.Update(ctx, rec.ID, store.Patch{PhotoURL: &url}); err != nil {
		return fmt.Errorf("rewrite photo ref %s: %w", rec.ID, err)
	}
	b.log.Info(ctx, "photo uploaded", "id", rec.ID, "key", key)
	return nil
}

// PushSnapshot serializes the whole collection and appends it as a new row
// for the current user. It refuses to run while any photo is still local:
// remote snapshots must only ever reference remote URLs.
func (b *Bridge) PushSnapshot(ctx context.Context) error {
	user, err := b.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}

	for _, rec := range b.store.All() {
		if rec.Photo.IsLocal() {
			return fmt.Errorf("%w: record %s", common.ErrPrecondition, rec.ID)
		}
	}

	data, err := b.store.Export()
	if err != nil {
		return err
	}
	if err := b.snapshots.Insert(ctx, user.ID, data); err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}
	b.log.Info(ctx, "snapshot pushed", "bytes", len(data))
	return nil
}

// PullLatestSnapshot fetches the newest snapshot for the current user and
// wholly replaces local state with it. No remote snapshot is a no-op. The
// caller must have warned the user: unsynced local edits are discarded.
func (b *Bridge) PullLatestSnapshot(ctx context.Context) error {
	user, err := b.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}

	data, err := b.snapshots.LatestByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			b.log.Info(ctx, "no remote snapshot")
			return nil
		}
		return fmt.Errorf("pull snapshot: %w", err)
	}
	return b.store.Import(ctx, data)
}

func (b *Bridge) claim(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.inflight[id]; busy {
		return false
	}
	b.inflight[id] = struct{}{}
	return true
}

func (b *Bridge) release(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, id)
}

// storageKey builds a fresh opaque key namespaced by user and date.
func storageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("users/%s/%d/%d/%v", userID, d.Year(), int(d.Month()), uuid.New())
}
