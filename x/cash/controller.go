package cash

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
)

// ExistenceRequirement tells a transfer what may happen to the source
// account.
type ExistenceRequirement int

const (
	// KeepAlive fails the transfer if the source would be left below the
	// existential deposit.
	KeepAlive ExistenceRequirement = iota
	// AllowDeath removes the source account if it is left below the
	// existential deposit. The remaining dust is burnt.
	AllowDeath
)

// Controller is the functionality other extensions use to move balances.
type Controller interface {
	MoveCoins(db weave.KVStore, src, dst weave.Address, amount coin.Coin, mode ExistenceRequirement) error
	IssueCoins(db weave.KVStore, dst weave.Address, amount coin.Coin) error
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coin, error)
}

// BaseController is the Controller backed by the cash Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// MoveCoins moves the given amount from src to dst.
//
// All checks run before anything is written, so a failed transfer leaves
// the store untouched.
func (c BaseController) MoveCoins(db weave.KVStore, src, dst weave.Address, amount coin.Coin, mode ExistenceRequirement) error {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return err
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if amount.Ticker != conf.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "only %s can be transferred", conf.Ticker)
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrap(errors.ErrInsufficientAmount, "empty account")
	}
	from := AsWallet(sender)
	if !from.Balance.IsGTE(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %s, need %s", from.Balance, amount)
	}
	left, err := from.Balance.Subtract(amount)
	if err != nil {
		return err
	}
	reap := conf.MinimalBalance.IsPositive() && !left.IsGTE(conf.MinimalBalance)
	if reap && mode == KeepAlive {
		return errors.Wrapf(ErrExistentialDeposit, "source would keep %s", left)
	}

	if src.Equals(dst) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dst, conf.Ticker)
	if err != nil {
		return err
	}
	to := AsWallet(recipient)
	total, err := to.Balance.Add(amount)
	if err != nil {
		return err
	}
	if conf.MinimalBalance.IsPositive() && !total.IsGTE(conf.MinimalBalance) {
		return errors.Wrapf(ErrExistentialDeposit, "destination would hold %s", total)
	}

	to.Balance = total
	if err := c.bucket.Save(db, recipient); err != nil {
		return err
	}
	if reap {
		return c.bucket.Delete(db, src)
	}
	from.Balance = left
	return c.bucket.Save(db, sender)
}

// IssueCoins adds the given amount to the destination account. It fails
// if the result would overflow or go negative.
func (c BaseController) IssueCoins(db weave.KVStore, dst weave.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	recipient, err := c.bucket.GetOrCreate(db, dst, amount.Ticker)
	if err != nil {
		return err
	}
	w := AsWallet(recipient)
	if w.Balance, err = w.Balance.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Balance returns the balance of addr. Unknown accounts hold nothing.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coin, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return coin.Coin{}, err
	}
	if obj == nil {
		return coin.Coin{}, nil
	}
	return AsWallet(obj).Balance, nil
}
