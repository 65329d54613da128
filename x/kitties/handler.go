package kitties

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/x"
)

const (
	createKittyCost int64 = 200
	marketCost      int64 = 100
)

// RegisterRoutes registers the kitty handlers. Ledger and market must
// share the same storage layout, which is always the case for buckets
// created by this package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ledger Ledger, market Market) {
	r.Handle(&CreateKittyMsg{}, CreateKittyHandler{auth: auth, ledger: ledger})
	r.Handle(&ListKittyMsg{}, ListKittyHandler{auth: auth, market: market})
	r.Handle(&CancelListingMsg{}, CancelListingHandler{auth: auth, market: market})
	r.Handle(&BuyKittyMsg{}, BuyKittyHandler{auth: auth, market: market})
}

// CreateKittyHandler mints kitties.
type CreateKittyHandler struct {
	auth   x.Authenticator
	ledger Ledger
}

var _ weave.Handler = CreateKittyHandler{}

func (h CreateKittyHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg CreateKittyMsg
	if _, err := loadSigned(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createKittyCost}, nil
}

// Deliver mints a kitty for the main signer. The result data holds the
// binary id of the new kitty.
func (h CreateKittyHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg CreateKittyMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	var events weave.EventLog
	kitty, err := h.ledger.Mint(ctx, db, &events, caller)
	if err != nil {
		if ErrIDSpaceExhausted.Is(err) {
			weave.GetLogger(ctx).Error("kitty id space exhausted", "err", err)
		}
		return nil, err
	}
	return &weave.DeliverResult{Data: kitty.ID.Bytes(), Events: events.Events()}, nil
}

// ListKittyHandler puts kitties up for sale.
type ListKittyHandler struct {
	auth   x.Authenticator
	market Market
}

var _ weave.Handler = ListKittyHandler{}

func (h ListKittyHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg ListKittyMsg
	if _, err := loadSigned(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: marketCost}, nil
}

func (h ListKittyHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg ListKittyMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	var events weave.EventLog
	if err := h.market.List(ctx, db, &events, caller, msg.KittyID, msg.Price); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Events: events.Events()}, nil
}

// CancelListingHandler withdraws listings.
type CancelListingHandler struct {
	auth   x.Authenticator
	market Market
}

var _ weave.Handler = CancelListingHandler{}

func (h CancelListingHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg CancelListingMsg
	if _, err := loadSigned(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: marketCost}, nil
}

func (h CancelListingHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg CancelListingMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	var events weave.EventLog
	if err := h.market.Cancel(ctx, db, &events, caller, msg.KittyID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Events: events.Events()}, nil
}

// BuyKittyHandler executes purchases.
type BuyKittyHandler struct {
	auth   x.Authenticator
	market Market
}

var _ weave.Handler = BuyKittyHandler{}

func (h BuyKittyHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg BuyKittyMsg
	if _, err := loadSigned(ctx, h.auth, tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: marketCost}, nil
}

func (h BuyKittyHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg BuyKittyMsg
	caller, err := loadSigned(ctx, h.auth, tx, &msg)
	if err != nil {
		return nil, err
	}
	var events weave.EventLog
	if _, err := h.market.Buy(ctx, db, &events, caller, msg.KittyID); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Events: events.Events()}, nil
}

// loadSigned loads the message into dst and returns the main signer, the
// account every kitty operation acts on behalf of.
func loadSigned(ctx weave.Context, auth x.Authenticator, tx weave.Tx, dst weave.Msg) (weave.Address, error) {
	if err := weave.LoadMsg(tx, dst); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return x.AnySigner(ctx, auth)
}
