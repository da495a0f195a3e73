//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAndMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.img")
	want := []byte{0xde, 0xad, 0xbe, 0xef, 0x42, 0, 0, 0}
	require.NoError(t, Save(path, want))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, want, data)

	require.NoError(t, cleanup())
	require.NoError(t, cleanup(), "second cleanup is a no-op")

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.img")
	require.NoError(t, Save(path, []byte("first image")))
	require.NoError(t, Save(path, []byte("second")))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	defer cleanup()
	require.Equal(t, "second", string(data))
}

func TestMapZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.img")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, cleanup)
	require.NoError(t, cleanup())
}

func TestMapMissing(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "nope.img"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
