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
)

type routes map[string]weave.Handler

func (r routes) Handle(m weave.Msg, h weave.Handler) {
	r[m.Path()] = h
}

func TestHandlers(t *testing.T) {
	auth := &weavetest.CtxAuth{Key: "kitties"}
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	db := marketDB(t)
	ledger := NewLedger(&seedEcho{})
	bank := &bankStub{}
	r := routes{}
	RegisterRoutes(r, auth, ledger, NewMarket(ledger, bank))
	assert.Equal(t, 4, len(r))

	asAlice := auth.SetConditions(context.Background(), alice)
	asBob := auth.SetConditions(context.Background(), bob)
	anonymous := context.Background()

	type step struct {
		ctx        weave.Context
		msg        weave.Msg
		wantCheck  *errors.Error
		wantErr    *errors.Error
		wantEvents []string
	}
	steps := []step{
		{
			ctx:       anonymous,
			msg:       &CreateKittyMsg{},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
		},
		{
			ctx:        asAlice,
			msg:        &CreateKittyMsg{},
			wantEvents: []string{"kitty_created"},
		},
		{
			ctx:       asAlice,
			msg:       &ListKittyMsg{Price: coin.NewCoin(5, 0, "KIT")},
			wantCheck: errors.ErrEmpty,
			wantErr:   errors.ErrEmpty,
		},
		{
			ctx:     asBob,
			msg:     &ListKittyMsg{KittyID: NewKittyID(1), Price: coin.NewCoin(5, 0, "KIT")},
			wantErr: ErrNotOwner,
		},
		{
			ctx:        asAlice,
			msg:        &ListKittyMsg{KittyID: NewKittyID(1), Price: coin.NewCoin(5, 0, "KIT")},
			wantEvents: []string{"kitty_for_sale"},
		},
		{
			ctx:     asAlice,
			msg:     &BuyKittyMsg{KittyID: NewKittyID(1)},
			wantErr: ErrOwnerCannotBuyOwn,
		},
		{
			ctx:     asBob,
			msg:     &CancelListingMsg{KittyID: NewKittyID(1)},
			wantErr: ErrNotOwner,
		},
		{
			ctx:        asAlice,
			msg:        &CancelListingMsg{KittyID: NewKittyID(1)},
			wantEvents: []string{"cancel_kitty_for_sale"},
		},
		{
			ctx:     asBob,
			msg:     &BuyKittyMsg{KittyID: NewKittyID(1)},
			wantErr: ErrNotListed,
		},
		{
			ctx:        asAlice,
			msg:        &ListKittyMsg{KittyID: NewKittyID(1), Price: coin.NewCoin(5, 0, "KIT")},
			wantEvents: []string{"kitty_for_sale"},
		},
		{
			ctx:        asBob,
			msg:        &BuyKittyMsg{KittyID: NewKittyID(1)},
			wantEvents: []string{"kitty_was_bought"},
		},
	}
	for i, s := range steps {
		h, ok := r[s.msg.Path()]
		if !ok {
			t.Fatalf("step %d: no handler for %q", i, s.msg.Path())
		}
		tx := &weavetest.Tx{Msg: s.msg}

		_, err := h.Check(s.ctx, db, tx)
		if !s.wantCheck.Is(err) {
			t.Fatalf("step %d: unexpected check error: %+v", i, err)
		}
		res, err := h.Deliver(s.ctx, db, tx)
		if !s.wantErr.Is(err) {
			t.Fatalf("step %d: unexpected deliver error: %+v", i, err)
		}
		if err != nil {
			continue
		}
		var kinds []string
		for _, e := range res.Events {
			kinds = append(kinds, e.Kind())
		}
		assert.Equal(t, s.wantEvents, kinds)
	}

	k, err := ledger.Get(db, NewKittyID(1))
	assert.Nil(t, err)
	assert.Equal(t, bob.Address(), k.Owner)
	assert.Equal(t, 1, len(bank.moves))
}

func TestCreateKittyReturnsID(t *testing.T) {
	auth := &weavetest.Auth{Signer: weavetest.NewCondition()}
	db := store.MemStore()
	h := CreateKittyHandler{auth: auth, ledger: NewLedger(&seedEcho{})}
	tx := &weavetest.Tx{Msg: &CreateKittyMsg{}}

	for want := uint64(1); want <= 3; want++ {
		res, err := h.Deliver(context.Background(), db, tx)
		assert.Nil(t, err)
		id, err := KittyIDFromBytes(res.Data)
		assert.Nil(t, err)
		assert.Equal(t, NewKittyID(want), id)
	}
}

func TestInitializer(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	db := store.MemStore()
	opts := weave.Options{
		"kitties": []byte(`{
			"counters": {"last_id": "41", "nonce": 7},
			"kitties": [
				{"owner": "` + owner.String() + `", "dna": "` + weave.Hash{0xAB}.String() + `"}
			]
		}`),
	}
	assert.Nil(t, Initializer{}.FromGenesis(opts, db))

	ledger := NewLedger(&seedEcho{})
	k, err := ledger.Get(db, NewKittyID(42))
	assert.Nil(t, err)
	assert.Equal(t, owner, k.Owner)
	assert.Equal(t, weave.Hash{0xAB}, k.DNA)

	counters, err := ledger.Counters(db)
	assert.Nil(t, err)
	assert.Equal(t, &Counters{LastID: NewKittyID(42), Nonce: 7}, counters)

	bad := weave.Options{"kitties": []byte(`{"kitties": [{"owner": ""}]}`)}
	if err := (Initializer{}).FromGenesis(bad, store.MemStore()); err == nil {
		t.Fatal("kitty without owner accepted")
	}
}
