package objstore

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	h3 := Hash([]byte("hello!"))

	require.Equal(t, h1, h2)
	require.NotEqual(t, h1, h3)
	require.Len(t, h1, 64)
}

func TestStore_PutGet(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "/repo/.carbon")

	data := []byte("line one\nline two\n")
	hash, err := s.Put(data)
	require.NoError(t, err)
	assert.Equal(t, Hash(data), hash)

	ok, err := afero.Exists(fs, filepath.Join("/repo/.carbon", "objects", hash[:2], hash[2:]))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Get(hash)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	has, err := s.Has(hash)
	require.NoError(t, err)
	assert.True(t, has)

	// No temp files are left behind.
	entries, err := afero.ReadDir(fs, filepath.Join("/repo/.carbon", "objects", hash[:2]))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_PutIsIdempotent(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/store")

	h1, err := s.Put([]byte("same"))
	require.NoError(t, err)
	h2, err := s.Put([]byte("same"))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestStore_EmptyObject(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/store")

	hash, err := s.Put(nil)
	require.NoError(t, err)

	got, err := s.Get(hash)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Missing(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/store")

	_, err := s.Get(Hash([]byte("never stored")))
	assert.ErrorIs(t, err, ErrNotFound)

	has, err := s.Has(Hash([]byte("never stored")))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStore_Corrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := New(fs, "/store")

	hash, err := s.Put([]byte("original"))
	require.NoError(t, err)

	other, err := s.Put([]byte("something else"))
	require.NoError(t, err)

	// Swap in another object's bytes under the first hash.
	b, err := afero.ReadFile(fs, s.objectPath(other))
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, s.objectPath(hash), b, 0o644))

	_, err = s.Get(hash)
	assert.ErrorIs(t, err, ErrCorrupt)

	// Not brotli at all.
	require.NoError(t, afero.WriteFile(fs, s.objectPath(hash), []byte("garbage"), 0o644))
	_, err = s.Get(hash)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStore_BadHash(t *testing.T) {
	s := New(afero.NewMemMapFs(), "/store")

	for _, h := range []string{"", "abc", "../../../../etc/passwd", Hash(nil)[:63] + "G"} {
		_, err := s.Get(h)
		assert.Error(t, err, h)
		assert.NotErrorIs(t, err, ErrNotFound, h)
	}
}
