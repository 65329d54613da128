package orm

import (
	"bytes"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

const compactIdxPrefix = "_i."

// compactIndex stores all entities indexed under one value as a set,
// serialized and stored under a single key. Unique indexes store the
// primary key directly. Use it for small index collections only.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
}

func newCompactIndex(name string, indexer Indexer, unique bool) compactIndex {
	return compactIndex{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
	}
}

// indexKey is the full key we store in the db, including prefix
func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// if both != nil and prev.Key() != save.Key() this is an error
func (i compactIndex) Update(db weave.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns all primary keys indexed under the given value.
func (i compactIndex) GetAt(db weave.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.indexKey(index))
	if err != nil || val == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var refs MultiRef
	if err := Unmarshal(val, &refs); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

func (i compactIndex) move(db weave.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrState, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if err := i.remove(db, oldKey, prev.Key()); err != nil {
		return err
	}
	return i.insert(db, newKey, save.Key())
}

func (i compactIndex) insert(db weave.KVStore, key []byte, pk []byte) error {
	if key == nil {
		return nil
	}
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "unique index %s", i.name)
		}
		return db.Set(dbkey, pk)
	}

	var refs MultiRef
	if cur != nil {
		if err := Unmarshal(cur, &refs); err != nil {
			return err
		}
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	bz, err := Marshal(&refs)
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}

func (i compactIndex) remove(db weave.KVStore, key []byte, pk []byte) error {
	if key == nil {
		return nil
	}
	dbkey := i.indexKey(key)
	cur, err := db.Get(dbkey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s has no entry", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s points to another key", i.name)
		}
		return db.Delete(dbkey)
	}

	var refs MultiRef
	if err := Unmarshal(cur, &refs); err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbkey)
	}
	bz, err := Marshal(&refs)
	if err != nil {
		return err
	}
	return db.Set(dbkey, bz)
}
