package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/store"
	"github.com/korzewski/weave/weavetest"
	"github.com/korzewski/weave/weavetest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestSavepoint(t *testing.T) {
	key, value := []byte("kitty"), []byte("meow")

	cases := map[string]struct {
		savepoint Savepoint
		handlErr  error
		check     bool
		wantSaved bool
	}{
		"deliver success is written": {
			savepoint: NewSavepoint().OnDeliver(),
			wantSaved: true,
		},
		"deliver failure is discarded": {
			savepoint: NewSavepoint().OnDeliver(),
			handlErr:  errors.ErrNotFound,
			wantSaved: false,
		},
		"check failure is discarded": {
			savepoint: NewSavepoint().OnCheck(),
			handlErr:  errors.ErrNotFound,
			check:     true,
			wantSaved: false,
		},
		"disabled savepoint keeps partial writes": {
			savepoint: NewSavepoint().OnCheck(),
			handlErr:  errors.ErrNotFound,
			wantSaved: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			h := weavetest.Decorate(weavetest.WriteHandler{Key: key, Value: value, Err: tc.handlErr}, tc.savepoint)

			var err error
			if tc.check {
				_, err = h.Check(context.Background(), db, &weavetest.Tx{})
			} else {
				_, err = h.Deliver(context.Background(), db, &weavetest.Tx{})
			}
			assert.IsErr(t, tc.handlErr, err)

			got, err := db.Get(key)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSaved, got != nil)
		})
	}
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "kitties/create"}}
	h := weavetest.Decorate(weavetest.PanicHandler{Value: "kaboom"}, NewRecovery())

	_, err := h.Check(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrPanic, err)

	_, err = h.Deliver(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrPanic, err)
	if !strings.Contains(err.Error(), "kaboom") {
		t.Fatalf("panic value missing from %q", err)
	}

	out := buf.String()
	for _, want := range []string{"phase=check", "phase=deliver", "path=kitties/create", "panic=kaboom", "E["} {
		if !strings.Contains(out, want) {
			t.Errorf("log output misses %q:\n%s", want, out)
		}
	}
}

func TestRecoveryPassesThrough(t *testing.T) {
	h := weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrNotFound}, NewRecovery())
	_, err := h.Deliver(context.Background(), store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "kitties/buy"}}

	ok := weavetest.Decorate(&weavetest.Handler{}, NewLogging())
	_, err := ok.Deliver(ctx, store.MemStore(), tx)
	assert.Nil(t, err)

	failing := weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrDatabase}, NewLogging())
	_, err = failing.Deliver(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrDatabase, err)

	out := buf.String()
	for _, want := range []string{"path=kitties/buy", "duration=", "E[", "I["} {
		if !strings.Contains(out, want) {
			t.Errorf("log output misses %q:\n%s", want, out)
		}
	}
}
