package sigs

import (
	"context"
	"testing"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/crypto"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/store"
	"github.com/korzewski/weave/weavetest"
	"github.com/korzewski/weave/weavetest/assert"
)

const chainID = "kitty-test"

type signedTx struct {
	weavetest.Tx
	data []byte
	sigs []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.data, nil
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.sigs
}

func sign(t *testing.T, key *crypto.PrivateKey, tx *signedTx, seq int64) *StdSignature {
	t.Helper()
	sig, err := SignTx(key, tx, chainID, seq)
	assert.Nil(t, err)
	return sig
}

func TestVerifySignatures(t *testing.T) {
	alice := weavetest.NewKey()
	bob := weavetest.NewKey()
	db := store.MemStore()

	tx := &signedTx{data: []byte("buy kitty 1")}

	// no signatures is not an error at this level
	signers, err := VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(signers))

	tx.sigs = []*StdSignature{sign(t, alice, tx, 0), sign(t, bob, tx, 0)}
	signers, err = VerifyTxSignatures(db, tx, chainID)
	assert.Nil(t, err)
	assert.Equal(t, []weave.Condition{alice.PublicKey().Condition(), bob.PublicKey().Condition()}, signers)

	// replay fails as the sequence moved on
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, ErrInvalidSequence, err)

	seq, err := NewBucket().Sequence(db, crypto.Address(alice.PublicKey()))
	assert.Nil(t, err)
	assert.Equal(t, int64(1), seq)

	// signature for another chain
	other, err := SignTx(alice, tx, "other-chain", 1)
	assert.Nil(t, err)
	tx.sigs = []*StdSignature{other}
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// tampered data
	tx.sigs = []*StdSignature{sign(t, alice, tx, 1)}
	tx.data = []byte("buy kitty 2")
	_, err = VerifyTxSignatures(db, tx, chainID)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestBuildSignBytes(t *testing.T) {
	_, err := BuildSignBytes([]byte("x"), chainID, -1)
	assert.IsErr(t, ErrInvalidSequence, err)
	_, err = BuildSignBytes([]byte("x"), "no spaces allowed", 0)
	assert.IsErr(t, errors.ErrInput, err)

	a, err := BuildSignBytes([]byte("x"), chainID, 1)
	assert.Nil(t, err)
	b, err := BuildSignBytes([]byte("x"), chainID, 2)
	assert.Nil(t, err)
	if len(a) != 64 || string(a) == string(b) {
		t.Fatal("sign bytes must be a sha512 digest bound to the sequence")
	}
}

func TestDecorator(t *testing.T) {
	alice := weavetest.NewKey()
	ctx := weave.WithChainID(context.Background(), chainID)

	cases := map[string]struct {
		decorator Decorator
		tx        func(*signedTx) weave.Tx
		wantErr   *errors.Error
		wantAuth  bool
	}{
		"signed": {
			decorator: NewDecorator(),
			tx: func(tx *signedTx) weave.Tx {
				tx.sigs = []*StdSignature{mustSign(alice, tx)}
				return tx
			},
			wantAuth: true,
		},
		"missing signature": {
			decorator: NewDecorator(),
			tx:        func(tx *signedTx) weave.Tx { return tx },
			wantErr:   errors.ErrUnauthorized,
		},
		"missing signature allowed": {
			decorator: NewDecorator().AllowMissingSigs(),
			tx:        func(tx *signedTx) weave.Tx { return tx },
		},
		"not a signed tx": {
			decorator: NewDecorator(),
			tx:        func(*signedTx) weave.Tx { return &weavetest.Tx{} },
			wantErr:   errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			var seen bool
			h := &authCapture{addr: crypto.Address(alice.PublicKey()), seen: &seen}

			tx := tc.tx(&signedTx{data: []byte("create kitty")})
			_, err := tc.decorator.Deliver(ctx, db, tx, h)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantAuth, seen)
		})
	}
}

func mustSign(key *crypto.PrivateKey, tx *signedTx) *StdSignature {
	sig, err := SignTx(key, tx, chainID, 0)
	if err != nil {
		panic(err)
	}
	return sig
}

// authCapture records whether addr was authenticated when called.
type authCapture struct {
	addr weave.Address
	seen *bool
}

func (a *authCapture) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	*a.seen = Authenticate{}.HasAddress(ctx, a.addr)
	return &weave.DeliverResult{}, nil
}
