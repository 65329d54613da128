package kitties

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/orm"
)

const (
	kittyBucketName   = "kitty"
	listingBucketName = "listing"
	accountBucketName = "kittyacct"
	counterBucketName = "kittycnt"

	// OwnerIndex is the name of the KittyBucket index over current owners.
	OwnerIndex = "owner"
)

// counterKey is the only key stored in the counters bucket.
var counterKey = []byte("counters")

// AsKitty safely extracts a Kitty from a bucket object.
func AsKitty(obj orm.Object) *Kitty {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Kitty)
}

// KittyBucket stores kitties by id, indexed by owner.
type KittyBucket struct {
	orm.Bucket
}

// NewKittyBucket returns the bucket with the owner index registered.
func NewKittyBucket() KittyBucket {
	b := orm.NewBucket(kittyBucketName, orm.NewSimpleObj(nil, &Kitty{}))
	return KittyBucket{
		Bucket: b.WithIndex(OwnerIndex, ownerIndexer, false),
	}
}

func ownerIndexer(obj orm.Object) ([]byte, error) {
	k := AsKitty(obj)
	if k == nil {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return k.Owner, nil
}

// GetKitty returns the kitty or ErrNotFound.
func (b KittyBucket) GetKitty(db weave.ReadOnlyKVStore, id KittyID) (*Kitty, error) {
	obj, err := b.Get(db, id.Bytes())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "kitty %s", id)
	}
	return AsKitty(obj), nil
}

// SaveKitty writes the kitty under its id.
func (b KittyBucket) SaveKitty(db weave.KVStore, k *Kitty) error {
	return b.Save(db, orm.NewSimpleObj(k.ID.Bytes(), k))
}

// ByOwner returns the kitties currently owned by addr, ordered by id.
func (b KittyBucket) ByOwner(db weave.ReadOnlyKVStore, owner weave.Address) ([]*Kitty, error) {
	objs, err := b.GetIndexed(db, OwnerIndex, owner)
	if err != nil {
		return nil, err
	}
	kitties := make([]*Kitty, len(objs))
	for i, obj := range objs {
		kitties[i] = AsKitty(obj)
	}
	return kitties, nil
}

// ListingBucket stores at most one listing per kitty id.
type ListingBucket struct {
	orm.Bucket
}

// NewListingBucket returns the listing bucket.
func NewListingBucket() ListingBucket {
	return ListingBucket{
		Bucket: orm.NewBucket(listingBucketName, orm.NewSimpleObj(nil, &Listing{})),
	}
}

// GetListing returns the listing or nil when the kitty is not for sale.
func (b ListingBucket) GetListing(db weave.ReadOnlyKVStore, id KittyID) (*Listing, error) {
	obj, err := b.Get(db, id.Bytes())
	if err != nil || obj == nil {
		return nil, err
	}
	return obj.Value().(*Listing), nil
}

// SaveListing writes the listing under its kitty id.
func (b ListingBucket) SaveListing(db weave.KVStore, l *Listing) error {
	return b.Save(db, orm.NewSimpleObj(l.KittyID.Bytes(), l))
}

// AccountBucket stores the minting history of every address.
type AccountBucket struct {
	orm.Bucket
}

// NewAccountBucket returns the account bucket.
func NewAccountBucket() AccountBucket {
	return AccountBucket{
		Bucket: orm.NewBucket(accountBucketName, orm.NewSimpleObj(nil, &Account{})),
	}
}

// GetAccount returns the account of addr. Unknown addresses have an
// empty account.
func (b AccountBucket) GetAccount(db weave.ReadOnlyKVStore, addr weave.Address) (*Account, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &Account{}, nil
	}
	return obj.Value().(*Account), nil
}

// Append adds id to the minting history of addr.
func (b AccountBucket) Append(db weave.KVStore, addr weave.Address, id KittyID) error {
	acc, err := b.GetAccount(db, addr)
	if err != nil {
		return err
	}
	acc.Kitties = append(acc.Kitties, id)
	return b.Save(db, orm.NewSimpleObj(addr, acc))
}

// CounterBucket holds the single Counters record.
type CounterBucket struct {
	orm.Bucket
}

// NewCounterBucket returns the counters bucket.
func NewCounterBucket() CounterBucket {
	return CounterBucket{
		Bucket: orm.NewBucket(counterBucketName, orm.NewSimpleObj(nil, &Counters{})),
	}
}

// Load returns the stored counters, or the zero state.
func (b CounterBucket) Load(db weave.ReadOnlyKVStore) (*Counters, error) {
	obj, err := b.Get(db, counterKey)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return &Counters{}, nil
	}
	return obj.Value().(*Counters), nil
}

// Store writes the counters.
func (b CounterBucket) Store(db weave.KVStore, c *Counters) error {
	return b.Save(db, orm.NewSimpleObj(counterKey, c))
}
