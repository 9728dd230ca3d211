// Package derive transforms freshly attached pour photos into their stored
// form: a size-bounded working copy in the managed photo directory plus a
// compact blurhash placeholder computed from a small thumbnail.
package derive

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/buckket/go-blurhash"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/models"
	"github.com/pourlog/pourlog/internal/photodir"
)

const (
	// maxLongEdge caps the working copy's longest dimension.
	maxLongEdge = 1000

	// thumbSize bounds the hashing thumbnail. The thumbnail is never persisted.
	thumbSize = 50

	// Blurhash component grid. Fixed so repeated derivation of the same
	// photo yields the same placeholder.
	hashComponentsX = 4
	hashComponentsY = 3

	jpegQuality = 100
)

// Result is the outcome of a derivation: the (possibly rewritten) photo
// reference and the blurhash for placeholder rendering.
type Result struct {
	Photo    models.PhotoRef
	Blurhash string
}

// Pipeline derives stored photo assets into a managed photo directory.
type Pipeline struct {
	dir *photodir.Dir
}

func New(dir *photodir.Dir) *Pipeline {
	return &Pipeline{dir: dir}
}

// Derive processes a photo reference ahead of persisting its record.
//
// Remote refs and refs already inside the managed directory pass through
// unchanged together with the existing hash; only an unmanaged local source
// (a transient OS cache path) is decoded, resized and imported. Any image
// failure aborts the whole derivation with common.ErrDerivation and leaves
// no partial file behind, so the caller never commits a record referencing
// a file that does not exist.
func (p *Pipeline) Derive(ctx context.Context, ref models.PhotoRef, existingHash string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if ref.IsZero() || ref.IsRemote() {
		return Result{Photo: ref, Blurhash: existingHash}, nil
	}
	if p.dir.Contains(ref.String()) {
		// Already processed once; re-deriving would recompress on every edit.
		return Result{Photo: models.LocalPhoto(filepath.Base(ref.String())), Blurhash: existingHash}, nil
	}

	src := p.dir.PathFor(ref)
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return Result{}, fmt.Errorf("%w: decode %s: %v", common.ErrDerivation, src, err)
	}

	working := img
	if b := img.Bounds(); b.Dx() > maxLongEdge || b.Dy() > maxLongEdge {
		working = imaging.Fit(img, maxLongEdge, maxLongEdge, imaging.Lanczos)
	}

	// The thumbnail is built from the pre-resize source.
	thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
	hash, err := blurhash.Encode(hashComponentsX, hashComponentsY, thumb)
	if err != nil {
		return Result{}, fmt.Errorf("%w: blurhash %s: %v", common.ErrDerivation, src, err)
	}

	name, err := p.writeWorkingCopy(working)
	if err != nil {
		return Result{}, err
	}

	return Result{Photo: models.LocalPhoto(name), Blurhash: hash}, nil
}

// writeWorkingCopy encodes img into the managed directory under a fresh
// uuid filename. The encode goes to a temp file first and is renamed into
// place, so a failed encode never leaves a half-written photo.
func (p *Pipeline) writeWorkingCopy(img image.Image) (string, error) {
	tmp, err := os.CreateTemp(p.dir.Root(), ".derive-*")
	if err != nil {
		return "", fmt.Errorf("%w: temp file: %v", common.ErrDerivation, err)
	}
	tmpPath := tmp.Name()

	if err := imaging.Encode(tmp, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: encode: %v", common.ErrDerivation, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: close temp: %v", common.ErrDerivation, err)
	}

	name := uuid.NewString() + ".jpg"
	if err := os.Rename(tmpPath, filepath.Join(p.dir.Root(), name)); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("%w: store working copy: %v", common.ErrDerivation, err)
	}
	return name, nil
}
