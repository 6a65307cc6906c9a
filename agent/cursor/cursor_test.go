package cursor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	s := NewMemStore()

	v, err := s.Get(ctx, "mentions")
	assert.NoError(err)
	assert.Equal("", v)

	assert.NoError(s.Set(ctx, "mentions", "1764012345"))
	assert.NoError(s.Set(ctx, "dms", "99"))

	v, err = s.Get(ctx, "mentions")
	assert.NoError(err)
	assert.Equal("1764012345", v)

	v, err = s.Get(ctx, "dms")
	assert.NoError(err)
	assert.Equal("99", v)
}

func TestFileStoreRoundtrip(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "state", "cursors.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	v, err := s.Get(ctx, "mentions")
	assert.NoError(err)
	assert.Equal("", v)

	assert.NoError(s.Set(ctx, "mentions", "1764012345"))
	assert.NoError(s.Set(ctx, "mentions", "1764099999"))
	assert.NoError(s.Set(ctx, "dms", "42"))

	// a fresh store against the same file sees the last values
	s2, err := NewFileStore(path)
	require.NoError(t, err)

	v, err = s2.Get(ctx, "mentions")
	assert.NoError(err)
	assert.Equal("1764099999", v)

	v, err = s2.Get(ctx, "dms")
	assert.NoError(err)
	assert.Equal("42", v)
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}
