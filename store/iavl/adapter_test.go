package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func TestCommitStoreWriteAndCommit(t *testing.T) {
	commit := NewCommitStoreFromDB(dbm.NewMemDB())
	require.NoError(t, commit.LoadLatestVersion())

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("kitty"), []byte("one")))
	require.NoError(t, cache.Set([]byte("kitten"), []byte("two")))

	// nothing visible until written
	val, err := commit.Get([]byte("kitty"))
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, cache.Write())
	id, err := commit.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)
	assert.NotEmpty(t, id.Hash)

	val, err = commit.Get([]byte("kitty"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), val)

	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStoreDiscard(t *testing.T) {
	commit := NewCommitStoreFromDB(dbm.NewMemDB())

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("foo"), []byte("bar")))
	cache.Discard()

	_, err := commit.Commit()
	require.NoError(t, err)
	val, err := commit.Get([]byte("foo"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestAdapterIterator(t *testing.T) {
	commit := NewCommitStoreFromDB(dbm.NewMemDB())
	kv := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, kv.Set([]byte(k), []byte(k)))
	}

	it, err := kv.Iterator([]byte("b"), []byte("d"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, keys(t, it))

	it, err = kv.ReverseIterator(nil, []byte("c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, keys(t, it))
}

func TestCommitStorePersists(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	commit, err := NewCommitStore(dir, "base")
	require.NoError(t, err)
	require.NoError(t, commit.LoadLatestVersion())
	require.NoError(t, commit.Adapter().Set([]byte("k"), []byte("v")))
	first, err := commit.Commit()
	require.NoError(t, err)
	commit.Close()

	reopened, err := NewCommitStore(dir, "base")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())
	latest, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, first, latest)

	val, err := reopened.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}

func keys(t testing.TB, it store.Iterator) []string {
	t.Helper()
	defer it.Release()
	var res []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, string(k))
	}
}
