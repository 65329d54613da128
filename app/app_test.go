package app

import (
	"encoding/json"
	"testing"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/crypto"
	"github.com/korzewski/weave/weavetest"
	"github.com/korzewski/weave/weavetest/assert"
	"github.com/korzewski/weave/x/cash"
	"github.com/korzewski/weave/x/entropy"
	"github.com/korzewski/weave/x/kitties"
	"github.com/korzewski/weave/x/sigs"
)

const testChainID = "kitty-test"

func newTestApp(t *testing.T, db weave.CommitKVStore) *Application {
	t.Helper()
	a, err := NewApplication(Config{
		Name:        "kittyd",
		Store:       db,
		Decoder:     DecodeTx,
		Handler:     Stack(entropy.NewBlockSource("kittyd")),
		Initializer: Initializers(),
	})
	if err != nil {
		t.Fatalf("cannot create application: %s", err)
	}
	return a
}

func genesis(t *testing.T, alice, bob weave.Address) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"cash": map[string]interface{}{
				"ticker":          "KIT",
				"minimal_balance": "1 KIT",
			},
		},
		"cash": []interface{}{
			map[string]interface{}{"address": alice, "balance": "100 KIT"},
			map[string]interface{}{"address": bob, "balance": "300 KIT"},
		},
		"kitties": map[string]interface{}{},
	})
	if err != nil {
		t.Fatalf("cannot serialize genesis: %s", err)
	}
	return raw
}

func signedTx(t *testing.T, key *crypto.PrivateKey, seq int64, msg weave.Msg) []byte {
	t.Helper()
	tx := &Tx{Msg: msg}
	if err := tx.Sign(key, testChainID, seq); err != nil {
		t.Fatalf("cannot sign: %s", err)
	}
	raw, err := EncodeTx(tx)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	return raw
}

func hasTag(res abci.ResponseDeliverTx, key, value string) bool {
	for _, tag := range res.Tags {
		if string(tag.Key) == key && string(tag.Value) == value {
			return true
		}
	}
	return false
}

func TestApplicationMarketFlow(t *testing.T) {
	db, cleanup := weavetest.CommitKVStore(t)
	defer cleanup()

	aliceKey, bobKey := weavetest.NewKey(), weavetest.NewKey()
	alice, bob := aliceKey.PublicKey().Condition().Address(), bobKey.PublicKey().Condition().Address()

	a := newTestApp(t, db)
	a.InitChain(abci.RequestInitChain{
		ChainId:       testChainID,
		AppStateBytes: genesis(t, alice, bob),
	})
	assert.Equal(t, testChainID, a.ChainID())

	now := time.Date(2019, 4, 1, 12, 0, 0, 0, time.UTC)

	res, err := a.LocalBlock(now, signedTx(t, aliceKey, 0, &kitties.CreateKittyMsg{}))
	assert.Nil(t, err)
	assert.Equal(t, uint32(0), res[0].Code)
	id, err := kitties.KittyIDFromBytes(res[0].Data)
	assert.Nil(t, err)
	assert.Equal(t, kitties.NewKittyID(1), id)
	if !hasTag(res[0], "kitty_created.kitty_id", "1") {
		t.Fatalf("missing creation tag in %v", res[0].Tags)
	}

	res, err = a.LocalBlock(now.Add(time.Minute),
		signedTx(t, aliceKey, 1, &kitties.ListKittyMsg{KittyID: id, Price: coin.NewCoin(50, 0, "KIT")}),
		signedTx(t, bobKey, 0, &kitties.BuyKittyMsg{KittyID: id}),
	)
	assert.Nil(t, err)
	for i, r := range res {
		if r.Code != 0 {
			t.Fatalf("tx %d failed: %d %s", i, r.Code, r.Log)
		}
	}

	view := a.ReadStore()
	bank := cash.NewController()
	balance, err := bank.Balance(view, alice)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(150, 0, "KIT"), balance)
	balance, err = bank.Balance(view, bob)
	assert.Nil(t, err)
	assert.Equal(t, coin.NewCoin(250, 0, "KIT"), balance)

	ledger := kitties.NewLedger(nil)
	kitty, err := ledger.Get(view, id)
	assert.Nil(t, err)
	assert.Equal(t, bob, kitty.Owner)

	// A rejected call still consumes the signer sequence.
	res, err = a.LocalBlock(now.Add(2*time.Minute),
		signedTx(t, bobKey, 1, &kitties.BuyKittyMsg{KittyID: id}),
	)
	assert.Nil(t, err)
	assert.Equal(t, kitties.ErrOwnerCannotBuyOwn.ABCICode(), res[0].Code)
	seq, err := sigs.NewBucket().Sequence(a.ReadStore(), bob)
	assert.Nil(t, err)
	assert.Equal(t, int64(2), seq)

	// Replay of an already used sequence.
	res, err = a.LocalBlock(now.Add(3*time.Minute),
		signedTx(t, bobKey, 1, &kitties.BuyKittyMsg{KittyID: id}),
	)
	assert.Nil(t, err)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res[0].Code)

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, int64(4), info.LastBlockHeight)
	assert.Equal(t, "kittyd", info.Data)
}

func TestApplicationReload(t *testing.T) {
	db, cleanup := weavetest.CommitKVStore(t)
	defer cleanup()

	aliceKey := weavetest.NewKey()
	alice := aliceKey.PublicKey().Condition().Address()

	a := newTestApp(t, db)
	a.InitChain(abci.RequestInitChain{
		ChainId:       testChainID,
		AppStateBytes: genesis(t, alice, weavetest.NewCondition().Address()),
	})
	_, err := a.LocalBlock(time.Now(), signedTx(t, aliceKey, 0, &kitties.CreateKittyMsg{}))
	assert.Nil(t, err)

	// A second application over the same store sees the committed state.
	b := newTestApp(t, db)
	assert.Equal(t, testChainID, b.ChainID())
	owned, err := kitties.NewLedger(nil).Owned(b.ReadStore(), alice)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(owned))

	assert.Panics(t, func() {
		b.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: []byte(`{}`)})
	})
}

func TestApplicationRejectsGarbage(t *testing.T) {
	db, cleanup := weavetest.CommitKVStore(t)
	defer cleanup()

	a := newTestApp(t, db)
	_, err := a.LocalBlock(time.Now())
	if err == nil {
		t.Fatal("block before genesis must fail")
	}

	res := a.CheckTx([]byte("not a transaction"))
	if res.Code == 0 {
		t.Fatal("garbage must not pass the check")
	}

	q := a.Query(abci.RequestQuery{Path: "/kitties"})
	if q.Code == 0 {
		t.Fatal("unsupported path must fail")
	}
}
