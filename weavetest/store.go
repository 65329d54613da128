package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/korzewski/weave/store/iavl"
)

// CommitKVStore returns a store using the same goleveldb backed iavl tree
// as kittyd. Call cleanup once done.
func CommitKVStore(t testing.TB) (db iavl.CommitStore, cleanup func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "weavetest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	db, err = iavl.NewCommitStore(dir, "db")
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("cannot create commit store: %s", err)
	}
	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}
