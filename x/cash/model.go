package cash

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Wallet is the balance of a single account.
type Wallet struct {
	Balance coin.Coin
}

var _ orm.Model = (*Wallet)(nil)

// Validate requires a valid, non negative balance.
func (w *Wallet) Validate() error {
	if err := w.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	if !w.Balance.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// AsWallet will safely type-cast any value from Bucket to a Wallet
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// Bucket is a type-safe wrapper around orm.Bucket
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Wallet{})),
	}
}

// GetOrCreate loads the wallet of addr, or returns an empty one of the
// given currency that is not yet saved.
func (b Bucket) GetOrCreate(db weave.KVStore, addr weave.Address, ticker string) (orm.Object, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj != nil {
		return obj, err
	}
	return orm.NewSimpleObj(addr, &Wallet{Balance: coin.Coin{Ticker: ticker}}), nil
}
