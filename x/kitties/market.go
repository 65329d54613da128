package kitties

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/orm"
	"github.com/korzewski/weave/x/cash"
)

// Transferer moves balances between accounts. cash.Controller satisfies
// it.
type Transferer interface {
	MoveCoins(db weave.KVStore, src, dst weave.Address, amount coin.Coin, mode cash.ExistenceRequirement) error
}

// Market implements the listing state of every kitty:
//
//   unlisted --List--> listed --Cancel--> unlisted
//                        |
//                        +--Buy--> unlisted, owned by the buyer
//
// Every operation either succeeds completely or leaves the store as it
// was.
type Market struct {
	ledger   Ledger
	listings ListingBucket
	bank     Transferer
}

// NewMarket returns a market trading kitties of ledger, paid through bank.
func NewMarket(ledger Ledger, bank Transferer) Market {
	return Market{
		ledger:   ledger,
		listings: NewListingBucket(),
		bank:     bank,
	}
}

// List offers the kitty for price. Only the owner may list, and a kitty
// can have only one listing. The price must be in the ticker the cash
// configuration allows, otherwise no buyer could ever pay it.
func (m Market) List(ctx weave.Context, db weave.KVStore, sink weave.EventSink, caller weave.Address, id KittyID, price coin.Coin) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	conf, err := cash.LoadConfiguration(db)
	if err != nil {
		return err
	}
	if price.Ticker != conf.Ticker {
		return errors.Wrapf(errors.ErrCurrency, "price must be in %s", conf.Ticker)
	}
	listed, err := m.listings.Has(db, id.Bytes())
	if err != nil {
		return err
	}
	if listed {
		return errors.Wrapf(ErrAlreadyListed, "kitty %s", id)
	}
	kitty, err := m.ledger.Get(db, id)
	if err != nil {
		return err
	}
	if !kitty.Owner.Equals(caller) {
		return errors.Wrapf(ErrNotOwner, "kitty %s", id)
	}
	if err := m.listings.SaveListing(db, &Listing{KittyID: id, Price: price}); err != nil {
		return errors.Wrap(err, "save listing")
	}
	sink.Emit(KittyForSale{Seller: caller, Kitty: *kitty, Price: price})
	return nil
}

// Cancel withdraws the listing. The owner is read at cancel time.
func (m Market) Cancel(ctx weave.Context, db weave.KVStore, sink weave.EventSink, caller weave.Address, id KittyID) error {
	listing, err := m.listings.GetListing(db, id)
	if err != nil {
		return err
	}
	if listing == nil {
		return errors.Wrapf(ErrNotListed, "kitty %s", id)
	}
	kitty, err := m.ledger.Get(db, id)
	if err != nil {
		return err
	}
	if !kitty.Owner.Equals(caller) {
		return errors.Wrapf(ErrNotOwner, "kitty %s", id)
	}
	if err := m.listings.Delete(db, id.Bytes()); err != nil {
		return errors.Wrap(err, "delete listing")
	}
	sink.Emit(CancelKittyForSale{Seller: caller, Kitty: *kitty})
	return nil
}

// Buy pays the listed price to the owner and hands the kitty over to
// caller. The payer must keep at least the existential deposit. The
// current owner always gets ErrOwnerCannotBuyOwn, anybody else gets
// ErrNotListed for a kitty that is not for sale.
//
// A failed payment is returned marked with ErrTransferFailed and leaves
// the kitty, its listing and all balances unchanged.
func (m Market) Buy(ctx weave.Context, db weave.KVStore, sink weave.EventSink, caller weave.Address, id KittyID) (*Kitty, error) {
	listing, err := m.listings.GetListing(db, id)
	if err != nil {
		return nil, err
	}
	kitty, err := m.ledger.Get(db, id)
	switch {
	case errors.ErrNotFound.Is(err) && listing == nil:
		return nil, errors.Wrapf(ErrNotListed, "kitty %s", id)
	case err != nil:
		return nil, err
	}
	// The owner is refused whether the kitty is listed or not.
	seller := kitty.Owner
	if seller.Equals(caller) {
		return nil, errors.Wrapf(ErrOwnerCannotBuyOwn, "kitty %s", id)
	}
	if listing == nil {
		return nil, errors.Wrapf(ErrNotListed, "kitty %s", id)
	}

	if !listing.Price.IsZero() {
		if err := m.bank.MoveCoins(db, caller, seller, listing.Price, cash.KeepAlive); err != nil {
			weave.GetLogger(ctx).Debug("kitty payment rejected",
				"kitty", id.String(), "price", listing.Price.String(), "err", err)
			return nil, errors.Mark(err, ErrTransferFailed)
		}
	}

	if err := m.listings.Delete(db, id.Bytes()); err != nil {
		return nil, errors.Wrap(err, "delete listing")
	}
	if err := m.ledger.TransferOwner(db, id, caller); err != nil {
		return nil, errors.Wrap(err, "transfer owner")
	}
	kitty.Owner = caller
	sink.Emit(KittyWasBought{Buyer: caller, Seller: seller, Kitty: *kitty, Price: listing.Price})
	return kitty, nil
}

// Price returns the listed price of the kitty, or ErrNotListed.
func (m Market) Price(db weave.ReadOnlyKVStore, id KittyID) (coin.Coin, error) {
	listing, err := m.listings.GetListing(db, id)
	if err != nil {
		return coin.Coin{}, err
	}
	if listing == nil {
		return coin.Coin{}, errors.Wrapf(ErrNotListed, "kitty %s", id)
	}
	return listing.Price, nil
}

// Listings returns all open listings ordered by kitty id.
func (m Market) Listings(db weave.ReadOnlyKVStore) ([]*Listing, error) {
	var res []*Listing
	err := m.listings.Iterate(db, func(obj orm.Object) error {
		res = append(res, obj.Value().(*Listing))
		return nil
	})
	return res, err
}
