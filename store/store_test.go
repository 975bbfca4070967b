package store

import (
	"image"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/bitpack/atlas"
	"github.com/bodgit/bitpack/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*Store, func()) {
	dir, err := ioutil.TempDir("", "store")
	require.NoError(t, err)

	s, err := Open(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)

	return s, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}

func buildAtlas(t *testing.T, first, last rune) *atlas.Atlas {
	a, err := atlas.Build(atlas.RasterizerFunc(func(r rune) (*image.Gray, error) {
		m := image.NewGray(image.Rect(0, 0, 5, 3))
		m.Pix[int(r)%len(m.Pix)] = 0xff
		return m, nil
	}), first, last, mono.DefaultThreshold)
	require.NoError(t, err)
	return a
}

func TestKey(t *testing.T) {
	k := Key([]byte("font"), 12, 0x21, 0x7e, 170)
	assert.Len(t, k, 40)
	assert.Equal(t, k, Key([]byte("font"), 12, 0x21, 0x7e, 170))

	assert.NotEqual(t, k, Key([]byte("font!"), 12, 0x21, 0x7e, 170))
	assert.NotEqual(t, k, Key([]byte("font"), 13, 0x21, 0x7e, 170))
	assert.NotEqual(t, k, Key([]byte("font"), 12, 0x20, 0x7e, 170))
	assert.NotEqual(t, k, Key([]byte("font"), 12, 0x21, 0x7f, 170))
	assert.NotEqual(t, k, Key([]byte("font"), 12, 0x21, 0x7e, 128))
}

func TestGetMiss(t *testing.T) {
	s, done := openStore(t)
	defer done()

	a, err := s.Get("missing")
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestPutGet(t *testing.T) {
	s, done := openStore(t)
	defer done()

	a := buildAtlas(t, 'a', 'z')
	require.NoError(t, s.Put("key", a))

	b, err := s.Get("key")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, a.Width, b.Width)
	assert.Equal(t, a.Height, b.Height)
	assert.Equal(t, a.First, b.First)
	assert.Equal(t, a.Last, b.Last)
	assert.Equal(t, a.Bytes(), b.Bytes())

	// Replacing an entry keeps the latest
	c := buildAtlas(t, 'A', 'C')
	require.NoError(t, s.Put("key", c))
	b, err = s.Get("key")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
}

func TestPutGetEmpty(t *testing.T) {
	s, done := openStore(t)
	defer done()

	require.NoError(t, s.Put("empty", buildAtlas(t, 0x41, 0x40)))

	a, err := s.Get("empty")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Zero(t, a.Len())
}
