package cli

import (
	"context"
	"os"
)

// Sync uploads every locally stored photo to object storage and rewrites the
// affected records to their public URLs.
func (a *App) Sync(ctx context.Context) error {
	b, err := a.ensureBridge(ctx)
	if err != nil {
		printlnFn("Sync unavailable:", err.Error())
		return err
	}

	if err := b.UploadPendingPhotos(ctx); err != nil {
		printlnFn("Some uploads failed:", err.Error())
		return err
	}
	printlnFn("Photos synchronized")
	return nil
}

// Push stores a whole-dataset snapshot in the remote table. Refused while
// any photo is still local-only; run sync first.
func (a *App) Push(ctx context.Context) error {
	b, err := a.ensureBridge(ctx)
	if err != nil {
		printlnFn("Push unavailable:", err.Error())
		return err
	}

	if err := b.PushSnapshot(ctx); err != nil {
		printlnFn("Push failed:", err.Error())
		return err
	}
	printlnFn("Snapshot pushed")
	return nil
}

// Pull replaces the local collection with the newest remote snapshot, after
// confirmation. A missing remote snapshot leaves local data untouched.
func (a *App) Pull(ctx context.Context) error {
	b, err := a.ensureBridge(ctx)
	if err != nil {
		printlnFn("Pull unavailable:", err.Error())
		return err
	}

	if !Confirm(a.reader, "Replace local pours with the latest remote snapshot?", os.Stdout) {
		printlnFn("Cancelled")
		return nil
	}

	if err := b.PullLatestSnapshot(ctx); err != nil {
		printlnFn("Pull failed:", err.Error())
		return err
	}
	printlnFn("Local data replaced from remote snapshot")
	return nil
}
