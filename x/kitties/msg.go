package kitties

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
)

const (
	pathCreateKitty   = "kitties/create"
	pathListKitty     = "kitties/list"
	pathCancelListing = "kitties/cancel"
	pathBuyKitty      = "kitties/buy"
)

var (
	_ weave.Msg = (*CreateKittyMsg)(nil)
	_ weave.Msg = (*ListKittyMsg)(nil)
	_ weave.Msg = (*CancelListingMsg)(nil)
	_ weave.Msg = (*BuyKittyMsg)(nil)
)

// CreateKittyMsg mints a kitty for the signer.
type CreateKittyMsg struct{}

// Path returns the routing path for this message
func (CreateKittyMsg) Path() string {
	return pathCreateKitty
}

// Validate always passes, there is nothing to validate.
func (*CreateKittyMsg) Validate() error {
	return nil
}

// ListKittyMsg offers a kitty of the signer for sale.
type ListKittyMsg struct {
	KittyID KittyID
	Price   coin.Coin
}

// Path returns the routing path for this message
func (ListKittyMsg) Path() string {
	return pathListKitty
}

// Validate requires a kitty id and a non negative price.
func (m *ListKittyMsg) Validate() error {
	return errors.Append(
		errors.Wrap(m.KittyID.Validate(), "kitty_id"),
		validatePrice(m.Price),
	)
}

// CancelListingMsg withdraws a listing of the signer.
type CancelListingMsg struct {
	KittyID KittyID
}

// Path returns the routing path for this message
func (CancelListingMsg) Path() string {
	return pathCancelListing
}

func (m *CancelListingMsg) Validate() error {
	return errors.Wrap(m.KittyID.Validate(), "kitty_id")
}

// BuyKittyMsg buys a listed kitty for the signer.
type BuyKittyMsg struct {
	KittyID KittyID
}

// Path returns the routing path for this message
func (BuyKittyMsg) Path() string {
	return pathBuyKitty
}

func (m *BuyKittyMsg) Validate() error {
	return errors.Wrap(m.KittyID.Validate(), "kitty_id")
}
