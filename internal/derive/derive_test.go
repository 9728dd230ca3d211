package derive

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/models"
	"github.com/pourlog/pourlog/internal/photodir"
)

func setupPipeline(t *testing.T) (*Pipeline, *photodir.Dir) {
	t.Helper()
	dir := photodir.New(filepath.Join(t.TempDir(), "photos"))
	require.NoError(t, dir.Ensure())
	return New(dir), dir
}

// writeTestJPEG renders a small gradient and saves it outside the managed
// directory, standing in for an OS photo-picker cache file.
func writeTestJPEG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "picker.jpg")
	require.NoError(t, imaging.Save(img, path))
	return path
}

func listDir(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDerive_ImportsUnmanagedLocal(t *testing.T) {
	p, dir := setupPipeline(t)
	src := writeTestJPEG(t, 1200, 800)

	res, err := p.Derive(context.Background(), models.LocalPhoto(src), "")
	require.NoError(t, err)

	assert.True(t, res.Photo.IsLocal())
	assert.NotContains(t, res.Photo.String(), string(os.PathSeparator))
	assert.NotEmpty(t, res.Blurhash)

	stored := filepath.Join(dir.Root(), res.Photo.String())
	img, err := imaging.Open(stored)
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 1000)
	assert.LessOrEqual(t, img.Bounds().Dy(), 1000)
}

func TestDerive_SmallSourceNotUpscaled(t *testing.T) {
	p, dir := setupPipeline(t)
	src := writeTestJPEG(t, 320, 240)

	res, err := p.Derive(context.Background(), models.LocalPhoto(src), "")
	require.NoError(t, err)

	img, err := imaging.Open(filepath.Join(dir.Root(), res.Photo.String()))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestDerive_Deterministic(t *testing.T) {
	p, _ := setupPipeline(t)
	src := writeTestJPEG(t, 640, 480)

	first, err := p.Derive(context.Background(), models.LocalPhoto(src), "")
	require.NoError(t, err)
	second, err := p.Derive(context.Background(), models.LocalPhoto(src), "")
	require.NoError(t, err)

	assert.Equal(t, first.Blurhash, second.Blurhash)
	assert.NotEqual(t, first.Photo.String(), second.Photo.String())
}

func TestDerive_RemotePassesThrough(t *testing.T) {
	p, dir := setupPipeline(t)

	ref := models.RemotePhoto("https://cdn.example.com/u/1/a.jpg")
	res, err := p.Derive(context.Background(), ref, "hash123")
	require.NoError(t, err)

	assert.Equal(t, ref, res.Photo)
	assert.Equal(t, "hash123", res.Blurhash)
	assert.Empty(t, listDir(t, dir.Root()))
}

func TestDerive_ManagedLocalNotReprocessed(t *testing.T) {
	p, dir := setupPipeline(t)

	// Seed a managed photo, then derive its bare-filename ref.
	src := writeTestJPEG(t, 100, 100)
	name, err := dir.CopyIntoStore(src)
	require.NoError(t, err)
	before := listDir(t, dir.Root())

	res, err := p.Derive(context.Background(), models.LocalPhoto(name), "keepme")
	require.NoError(t, err)

	assert.Equal(t, name, res.Photo.String())
	assert.Equal(t, "keepme", res.Blurhash)
	assert.Equal(t, before, listDir(t, dir.Root()))
}

func TestDerive_CorruptSourceFailsAtomically(t *testing.T) {
	p, dir := setupPipeline(t)

	bad := filepath.Join(t.TempDir(), "corrupt.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not a jpeg"), 0o660))

	_, err := p.Derive(context.Background(), models.LocalPhoto(bad), "")
	assert.ErrorIs(t, err, common.ErrDerivation)

	for _, name := range listDir(t, dir.Root()) {
		assert.False(t, strings.HasPrefix(name, ".derive-"), "leftover temp file %s", name)
	}
	assert.Empty(t, listDir(t, dir.Root()))
}

func TestDerive_CancelledContext(t *testing.T) {
	p, _ := setupPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Derive(ctx, models.LocalPhoto("whatever.jpg"), "")
	assert.ErrorIs(t, err, context.Canceled)
}
