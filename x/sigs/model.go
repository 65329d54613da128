package sigs

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/crypto"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// maxSequenceValue keeps sequences within the integer range JSON clients
// represent exactly.
const maxSequenceValue = (1 << 53) - 1

// UserData is the signer state: the public key, once known, and the
// sequence the next signature must carry.
type UserData struct {
	Pubkey   *crypto.PublicKey
	Sequence int64
}

var _ orm.Model = (*UserData)(nil)

// Validate checks the sequence is in range and bound to a key.
func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Wrap(ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// CheckAndIncrementSequence increments the sequence if it equals expected.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// AsUser will safely type-cast any value from Bucket to a UserData
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// Bucket stores UserData by the address of the key.
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &UserData{})),
	}
}

// GetOrCreate loads the signer of pubkey, or returns a fresh record with
// sequence zero.
func (b Bucket) GetOrCreate(db weave.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	key := crypto.Address(pubkey)
	obj, err := b.Get(db, key)
	if err != nil || obj != nil {
		return obj, err
	}
	return orm.NewSimpleObj(key, &UserData{Pubkey: pubkey}), nil
}

// Sequence returns the sequence the next signature of addr must carry.
func (b Bucket) Sequence(db weave.ReadOnlyKVStore, addr weave.Address) (int64, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj == nil {
		return 0, err
	}
	return AsUser(obj).Sequence, nil
}
