package photodir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pourlog/pourlog/internal/common"
	"github.com/pourlog/pourlog/internal/models"
)

func setupDir(t *testing.T) *Dir {
	t.Helper()
	d := New(filepath.Join(t.TempDir(), "photos"))
	require.NoError(t, d.Ensure())
	return d
}

func TestEnsure_Idempotent(t *testing.T) {
	d := setupDir(t)
	require.NoError(t, d.Ensure())
	require.NoError(t, d.Ensure())

	fi, err := os.Stat(d.Root())
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestPathFor(t *testing.T) {
	d := setupDir(t)

	assert.Equal(t, "https://x/a.jpg", d.PathFor(models.RemotePhoto("https://x/a.jpg")))
	assert.Equal(t, "/tmp/picker/a.jpg", d.PathFor(models.LocalPhoto("/tmp/picker/a.jpg")))
	assert.Equal(t, filepath.Join(d.Root(), "a.jpg"), d.PathFor(models.LocalPhoto("a.jpg")))
}

func TestCopyIntoStore(t *testing.T) {
	d := setupDir(t)

	src := filepath.Join(t.TempDir(), "picker.jpg")
	require.NoError(t, os.WriteFile(src, []byte("jpegbytes"), 0o660))

	name, err := d.CopyIntoStore(src)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(name))

	data, err := os.ReadFile(filepath.Join(d.Root(), name))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), data)
}

func TestCopyIntoStore_AlreadyManaged(t *testing.T) {
	d := setupDir(t)

	managed := filepath.Join(d.Root(), "existing.jpg")
	require.NoError(t, os.WriteFile(managed, []byte("x"), 0o660))

	name, err := d.CopyIntoStore(managed)
	require.NoError(t, err)
	assert.Equal(t, "existing.jpg", name)

	// A bare filename is treated as managed too.
	name, err = d.CopyIntoStore("existing.jpg")
	require.NoError(t, err)
	assert.Equal(t, "existing.jpg", name)
}

func TestCopyIntoStore_MissingSource(t *testing.T) {
	d := setupDir(t)
	_, err := d.CopyIntoStore(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.Error(t, err)
}

func TestStat(t *testing.T) {
	d := setupDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(d.Root(), "a.jpg"), []byte("12345"), 0o660))

	info, err := d.Stat(models.LocalPhoto("a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.SizeBytes)
	assert.False(t, info.ModifiedAt.IsZero())

	_, err = d.Stat(models.LocalPhoto("missing.jpg"))
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = d.Stat(models.RemotePhoto("https://x/a.jpg"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}
