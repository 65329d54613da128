package kitties

import (
	"encoding/binary"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/orm"
)

// Kitty is a minted collectible. ID and DNA never change, Owner changes
// only when the kitty is bought.
type Kitty struct {
	ID    KittyID       `json:"id"`
	Owner weave.Address `json:"owner"`
	DNA   weave.Hash    `json:"dna"`
}

var _ orm.Model = (*Kitty)(nil)

// Validate requires an assigned id and a valid owner.
func (k *Kitty) Validate() error {
	if err := k.ID.Validate(); err != nil {
		return err
	}
	return errors.Wrap(k.Owner.Validate(), "owner")
}

// Listing offers a kitty for sale. A zero price is allowed.
type Listing struct {
	KittyID KittyID   `json:"kitty_id"`
	Price   coin.Coin `json:"price"`
}

var _ orm.Model = (*Listing)(nil)

// Validate requires a valid, non negative price.
func (l *Listing) Validate() error {
	if err := l.KittyID.Validate(); err != nil {
		return err
	}
	return validatePrice(l.Price)
}

func validatePrice(price coin.Coin) error {
	if err := price.Validate(); err != nil {
		return errors.Wrap(err, "price")
	}
	if !price.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative price")
	}
	return nil
}

// Account lists every kitty minted by an address, in minting order. The
// list is never shortened, also not when a kitty is sold.
type Account struct {
	Kitties []KittyID `json:"kitties"`
}

var _ orm.Model = (*Account)(nil)

// Validate rejects unassigned ids.
func (a *Account) Validate() error {
	for i, id := range a.Kitties {
		if err := id.Validate(); err != nil {
			return errors.Wrapf(err, "kitty %d", i)
		}
	}
	return nil
}

// Counters holds the state of the id allocator and the seed sequencer.
// The zero value is the state of a fresh chain.
type Counters struct {
	// LastID is the most recently allocated kitty id, zero when nothing
	// was minted yet.
	LastID KittyID `json:"last_id"`
	// Nonce is the seed that will be drawn next.
	Nonce uint32 `json:"nonce"`
}

var _ orm.Model = (*Counters)(nil)

// Validate always passes, every counter state is legal.
func (c *Counters) Validate() error {
	return nil
}

// NextKittyID allocates a new kitty id. Ids start at 1 and are strictly
// increasing. Once MaxKittyID was handed out every call fails with
// ErrIDSpaceExhausted and the counter stays unchanged.
func (c *Counters) NextKittyID() (KittyID, error) {
	id, err := c.LastID.Next()
	if err != nil {
		return KittyID{}, err
	}
	c.LastID = id
	return id, nil
}

// DrawSeed returns the current nonce as 4 little endian bytes and
// advances it. The nonce wraps around to zero after 2^32-1.
func (c *Counters) DrawSeed() []byte {
	seed := make([]byte, 4)
	binary.LittleEndian.PutUint32(seed, c.Nonce)
	c.Nonce++
	return seed
}
