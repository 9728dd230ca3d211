// Package photodir owns the managed photo directory: resolving photo
// references to paths, importing externally sourced files and reporting
// file metadata.
package photodir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/models"
)

// Dir is the managed photo directory. All locally stored pour photos live
// directly under its root, referenced by bare filename on the record.
type Dir struct {
	root string
}

func New(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory root path.
func (d *Dir) Root() string { return d.root }

// Ensure creates the photo directory if absent. Safe to call repeatedly and
// concurrently.
func (d *Dir) Ensure() error {
	if err := os.MkdirAll(d.root, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", d.root, err)
	}
	return nil
}

// PathFor resolves a photo reference to something openable. Remote URLs and
// absolute local paths (transient OS cache locations) pass through unchanged;
// bare filenames resolve against the managed directory.
func (d *Dir) PathFor(ref models.PhotoRef) string {
	if ref.IsRemote() {
		return ref.String()
	}
	p := ref.String()
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.root, p)
}

// Contains reports whether path points inside the managed directory.
func (d *Dir) Contains(path string) bool {
	if !filepath.IsAbs(path) {
		// Bare filenames are managed by convention.
		return !strings.ContainsRune(path, os.PathSeparator)
	}
	rel, err := filepath.Rel(d.root, path)
	if err != nil {
		return false
	}
	return rel == filepath.Base(path)
}

// CopyIntoStore copies an externally sourced file (e.g. an OS photo-picker
// cache entry) into the managed directory and returns the stored filename.
// If src already lives inside the directory, it is a no-op returning the
// existing filename.
func (d *Dir) CopyIntoStore(src string) (string, error) {
	if d.Contains(src) {
		return filepath.Base(src), nil
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source %s: %w", src, err)
	}
	defer in.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(src))
	dst := filepath.Join(d.root, name)

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", dst, err)
	}

	return name, nil
}

// FileInfo describes a stored photo file.
type FileInfo struct {
	SizeBytes  int64
	ModifiedAt time.Time
}

// Stat returns size and modification time for a locally stored photo.
// Missing files (and remote refs, which have no local file) report
// common.ErrNotFound; callers treat that as "Unknown", not as a failure.
func (d *Dir) Stat(ref models.PhotoRef) (FileInfo, error) {
	if !ref.IsLocal() {
		return FileInfo{}, fmt.Errorf("%w: no local file for %q", common.ErrNotFound, ref.String())
	}
	fi, err := os.Stat(d.PathFor(ref))
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, fmt.Errorf("%w: %s", common.ErrNotFound, ref.String())
		}
		return FileInfo{}, fmt.Errorf("stat %s: %w", ref.String(), err)
	}
	return FileInfo{SizeBytes: fi.Size(), ModifiedAt: fi.ModTime()}, nil
}
