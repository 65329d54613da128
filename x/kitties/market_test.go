package kitties

import (
	"context"
	"testing"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/store"
	"github.com/korzewski/weave/weavetest"
	"github.com/korzewski/weave/weavetest/assert"
	"github.com/korzewski/weave/x/cash"
)

func kit(whole int64) coin.Coin {
	return coin.NewCoin(whole, 0, "KIT")
}

// marketDB returns an empty store configured to trade in KIT.
func marketDB(t testing.TB) weave.KVStore {
	t.Helper()
	db := store.MemStore()
	if err := cash.SaveConfiguration(db, cash.Configuration{Ticker: "KIT"}); err != nil {
		t.Fatalf("cannot save cash configuration: %s", err)
	}
	return db
}

// bankStub is a Transferer that records every successful move, or fails
// all of them with err.
type bankStub struct {
	err   error
	moves []move
}

type move struct {
	src, dst weave.Address
	amount   coin.Coin
	mode     cash.ExistenceRequirement
}

func (b *bankStub) MoveCoins(db weave.KVStore, src, dst weave.Address, amount coin.Coin, mode cash.ExistenceRequirement) error {
	if b.err != nil {
		return b.err
	}
	b.moves = append(b.moves, move{src: src, dst: dst, amount: amount, mode: mode})
	return nil
}

func TestMarketList(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		listed  bool
		caller  weave.Address
		id      KittyID
		price   coin.Coin
		wantErr *errors.Error
		// wantPrice is the listed price after the call.
		wantPrice coin.Coin
	}{
		"owner lists": {
			caller:    alice,
			id:        NewKittyID(1),
			price:     kit(100),
			wantPrice: kit(100),
		},
		"zero price": {
			caller:    alice,
			id:        NewKittyID(1),
			price:     kit(0),
			wantPrice: kit(0),
		},
		"already listed": {
			listed:    true,
			caller:    alice,
			id:        NewKittyID(1),
			price:     kit(7),
			wantErr:   ErrAlreadyListed,
			wantPrice: kit(100),
		},
		"already listed is checked before ownership": {
			listed:    true,
			caller:    bob,
			id:        NewKittyID(1),
			price:     kit(7),
			wantErr:   ErrAlreadyListed,
			wantPrice: kit(100),
		},
		"missing kitty": {
			caller:  alice,
			id:      NewKittyID(2),
			price:   kit(7),
			wantErr: errors.ErrNotFound,
		},
		"not the owner": {
			caller:  bob,
			id:      NewKittyID(1),
			price:   kit(7),
			wantErr: ErrNotOwner,
		},
		"negative price": {
			caller:  alice,
			id:      NewKittyID(1),
			price:   kit(-1),
			wantErr: errors.ErrAmount,
		},
		"price in a foreign currency": {
			caller:  alice,
			id:      NewKittyID(1),
			price:   coin.NewCoin(5, 0, "ETH"),
			wantErr: errors.ErrCurrency,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := marketDB(t)
			ledger := NewLedger(&seedEcho{})
			market := NewMarket(ledger, &bankStub{})

			var events weave.EventLog
			_, err := ledger.Mint(ctx, db, &events, alice)
			assert.Nil(t, err)
			if tc.listed {
				assert.Nil(t, market.List(ctx, db, &events, alice, NewKittyID(1), kit(100)))
			}

			var sink weave.EventLog
			err = market.List(ctx, db, &sink, tc.caller, tc.id, tc.price)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			price, err := market.Price(db, NewKittyID(1))
			if tc.wantPrice.Ticker == "" {
				assert.IsErr(t, ErrNotListed, err)
			} else {
				assert.Nil(t, err)
				assert.Equal(t, tc.wantPrice, price)
			}

			if tc.wantErr != nil {
				assert.Equal(t, 0, len(sink.Events()))
				return
			}
			assert.Equal(t, 1, len(sink.Events()))
			e := sink.Events()[0].(KittyForSale)
			assert.Equal(t, tc.caller, e.Seller)
			assert.Equal(t, tc.price, e.Price)
			assert.Equal(t, tc.id, e.Kitty.ID)
		})
	}
}

func TestMarketCancel(t *testing.T) {
	ctx := context.Background()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	db := marketDB(t)
	ledger := NewLedger(&seedEcho{})
	market := NewMarket(ledger, &bankStub{})
	var events weave.EventLog

	_, err := ledger.Mint(ctx, db, &events, alice)
	assert.Nil(t, err)
	id := NewKittyID(1)

	assert.IsErr(t, ErrNotListed, market.Cancel(ctx, db, &events, alice, id))
	assert.IsErr(t, ErrNotListed, market.Cancel(ctx, db, &events, alice, NewKittyID(9)))

	assert.Nil(t, market.List(ctx, db, &events, alice, id, kit(5)))
	assert.IsErr(t, ErrNotOwner, market.Cancel(ctx, db, &events, bob, id))
	_, err = market.Price(db, id)
	assert.Nil(t, err)

	// Ownership is read at cancel time.
	assert.Nil(t, ledger.TransferOwner(db, id, bob))
	assert.IsErr(t, ErrNotOwner, market.Cancel(ctx, db, &events, alice, id))
	assert.Nil(t, ledger.TransferOwner(db, id, alice))

	var sink weave.EventLog
	assert.Nil(t, market.Cancel(ctx, db, &sink, alice, id))
	_, err = market.Price(db, id)
	assert.IsErr(t, ErrNotListed, err)

	k, err := ledger.Get(db, id)
	assert.Nil(t, err)
	assert.Equal(t, alice, k.Owner)
	assert.Equal(t, 1, len(sink.Events()))
	assert.Equal(t, "cancel_kitty_for_sale", sink.Events()[0].Kind())

	// Cancel is not tolerant of redundant calls.
	assert.IsErr(t, ErrNotListed, market.Cancel(ctx, db, &sink, alice, id))
	assert.Equal(t, 1, len(sink.Events()))

	// Relisting after a cancel is allowed any number of times.
	for i := 0; i < 3; i++ {
		assert.Nil(t, market.List(ctx, db, &sink, alice, id, kit(int64(i))))
		assert.Nil(t, market.Cancel(ctx, db, &sink, alice, id))
	}
}

func TestMarketBuy(t *testing.T) {
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	cases := map[string]struct {
		price     *coin.Coin
		bankErr   error
		caller    weave.Address
		id        KittyID
		wantErr   *errors.Error
		wantOwner weave.Address
		wantMoves int
	}{
		"buy": {
			price:     &coin.Coin{Whole: 100, Ticker: "KIT"},
			caller:    bob,
			id:        NewKittyID(1),
			wantOwner: bob,
			wantMoves: 1,
		},
		"free kitty skips the payment": {
			price:     &coin.Coin{Ticker: "KIT"},
			caller:    bob,
			id:        NewKittyID(1),
			wantOwner: bob,
		},
		"not listed": {
			caller:    bob,
			id:        NewKittyID(1),
			wantErr:   ErrNotListed,
			wantOwner: alice,
		},
		"missing kitty": {
			caller:    bob,
			id:        NewKittyID(7),
			wantErr:   ErrNotListed,
			wantOwner: alice,
		},
		"owner cannot buy own unlisted kitty": {
			caller:    alice,
			id:        NewKittyID(1),
			wantErr:   ErrOwnerCannotBuyOwn,
			wantOwner: alice,
		},
		"owner cannot buy own listed kitty": {
			price:     &coin.Coin{Whole: 100, Ticker: "KIT"},
			caller:    alice,
			id:        NewKittyID(1),
			wantErr:   ErrOwnerCannotBuyOwn,
			wantOwner: alice,
		},
		"payment fails": {
			price:     &coin.Coin{Whole: 100, Ticker: "KIT"},
			bankErr:   errors.Wrap(errors.ErrInsufficientAmount, "broke"),
			caller:    bob,
			id:        NewKittyID(1),
			wantErr:   ErrTransferFailed,
			wantOwner: alice,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := marketDB(t)
			ledger := NewLedger(&seedEcho{})
			bank := &bankStub{err: tc.bankErr}
			market := NewMarket(ledger, bank)

			var events weave.EventLog
			_, err := ledger.Mint(ctx, db, &events, alice)
			assert.Nil(t, err)
			if tc.price != nil {
				assert.Nil(t, market.List(ctx, db, &events, alice, NewKittyID(1), *tc.price))
			}

			var sink weave.EventLog
			_, err = market.Buy(ctx, db, &sink, tc.caller, tc.id)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.bankErr != nil && !errors.ErrInsufficientAmount.Is(err) {
				t.Fatalf("transfer reason lost: %+v", err)
			}

			k, err := ledger.Get(db, NewKittyID(1))
			assert.Nil(t, err)
			assert.Equal(t, tc.wantOwner, k.Owner)
			assert.Equal(t, tc.wantMoves, len(bank.moves))

			_, err = market.Price(db, NewKittyID(1))
			if tc.wantErr == nil {
				assert.IsErr(t, ErrNotListed, err)
				assert.Equal(t, 1, len(sink.Events()))
				bought := sink.Events()[0].(KittyWasBought)
				assert.Equal(t, tc.caller, bought.Buyer)
				assert.Equal(t, alice, bought.Seller)
				assert.Equal(t, tc.caller, bought.Kitty.Owner)
				assert.Equal(t, *tc.price, bought.Price)
				return
			}
			assert.Equal(t, 0, len(sink.Events()))
			if tc.price != nil {
				assert.Nil(t, err)
			}
		})
	}
}

func TestMarketBuyPaysTheOwnerKeepAlive(t *testing.T) {
	ctx := context.Background()
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()
	db := marketDB(t)
	ledger := NewLedger(&seedEcho{})
	bank := &bankStub{}
	market := NewMarket(ledger, bank)

	var events weave.EventLog
	_, err := ledger.Mint(ctx, db, &events, alice)
	assert.Nil(t, err)
	id := NewKittyID(1)
	assert.Nil(t, market.List(ctx, db, &events, alice, id, kit(3)))
	_, err = market.Buy(ctx, db, &events, bob, id)
	assert.Nil(t, err)

	assert.Equal(t, []move{{src: bob, dst: alice, amount: kit(3), mode: cash.KeepAlive}}, bank.moves)

	// Relisting right after a purchase is allowed.
	assert.Nil(t, market.List(ctx, db, &events, bob, id, kit(4)))
	listings, err := market.Listings(db)
	assert.Nil(t, err)
	assert.Equal(t, []*Listing{{KittyID: id, Price: kit(4)}}, listings)

	// The owner can never buy, listed or not.
	_, err = market.Buy(ctx, db, &events, bob, id)
	assert.IsErr(t, ErrOwnerCannotBuyOwn, err)
}
