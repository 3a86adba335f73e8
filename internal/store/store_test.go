package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// openTestStore opens a fresh sqlite-backed Store in a temp directory,
// closing it automatically when the test finishes.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func Test_Store_PutGrammar_dedupesByHash(t *testing.T) {
	assert := assert.New(t)
	st := openTestStore(t)
	ctx := context.Background()

	id1, err := st.PutGrammar(ctx, "S -> a")
	assert.NoError(err)

	id2, err := st.PutGrammar(ctx, "S -> a")
	assert.NoError(err)
	assert.Equal(id1, id2, "same source text must not create a second row")

	id3, err := st.PutGrammar(ctx, "S -> b")
	assert.NoError(err)
	assert.NotEqual(id1, id3, "different source text must get its own row")
}

func Test_Store_GetByID(t *testing.T) {
	testCases := []struct {
		name     string
		seed     bool
		wantErr  error
		wantHash string
		wantKind string
	}{
		{name: "found", seed: true, wantHash: HashSource("S -> a")},
		{name: "not found", seed: false, wantErr: ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			st := openTestStore(t)
			ctx := context.Background()

			id := uuid.New()
			if tc.seed {
				var err error
				id, err = st.PutGrammar(ctx, "S -> a")
				assert.NoError(err)
			}

			entry, err := st.GetByID(ctx, id)
			if tc.wantErr != nil {
				assert.ErrorIs(err, tc.wantErr)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.wantHash, entry.Hash)
			assert.Equal(tc.wantKind, entry.TableKind)
			assert.Equal("S -> a", entry.Source)
		})
	}
}

func Test_Store_FindByHash(t *testing.T) {
	assert := assert.New(t)
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.PutGrammar(ctx, "S -> a")
	assert.NoError(err)

	entry, ok, err := st.FindByHash(ctx, HashSource("S -> a"))
	assert.NoError(err)
	assert.True(ok)
	assert.Equal(id, entry.ID)

	_, ok, err = st.FindByHash(ctx, HashSource("S -> nonexistent"))
	assert.NoError(err)
	assert.False(ok)
}

func Test_Store_PutTable(t *testing.T) {
	assert := assert.New(t)
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.PutGrammar(ctx, "S -> a")
	assert.NoError(err)

	payload := []byte("fake serialized table bytes")
	assert.NoError(st.PutTable(ctx, id, "ll1", payload))

	entry, err := st.GetByID(ctx, id)
	assert.NoError(err)
	assert.Equal("ll1", entry.TableKind)
	assert.Equal(payload, entry.TableData)

	err = st.PutTable(ctx, uuid.New(), "ll1", payload)
	assert.ErrorIs(err, ErrNotFound, "attaching a table to an ID with no grammar row must fail")
}
