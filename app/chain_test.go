package app

import (
	"context"
	"testing"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/store"
	"github.com/korzewski/weave/weavetest"
	"github.com/korzewski/weave/weavetest/assert"
)

func TestChain(t *testing.T) {
	var (
		first  weavetest.Decorator
		second weavetest.Decorator
		nilDec *weavetest.Decorator
		h      weavetest.Handler
	)
	stack := ChainDecorators(&first, nilDec, nil).Chain(&second).WithHandler(&h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{}

	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, first.CallCount())
	assert.Equal(t, 2, second.CallCount())
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())

	// The outer decorator stops the call before it reaches the rest.
	first.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, first.CallCount())
	assert.Equal(t, 2, second.CallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	record := func(name string, err error) weave.Initializer {
		return initFunc(func(weave.Options, weave.KVStore) error {
			calls = append(calls, name)
			return err
		})
	}

	inits := ChainInitializers(record("a", nil), record("b", errors.ErrInput), record("c", nil))
	err := inits.FromGenesis(weave.Options{}, store.MemStore())
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, []string{"a", "b"}, calls)
}

type initFunc func(weave.Options, weave.KVStore) error

func (f initFunc) FromGenesis(opts weave.Options, db weave.KVStore) error {
	return f(opts, db)
}
