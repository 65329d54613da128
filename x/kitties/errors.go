package kitties

import "github.com/korzewski/weave/errors"

// x/kitties reserves 140 ~ 149.
var (
	ErrAlreadyListed     = errors.Register(140, "kitty already listed")
	ErrNotListed         = errors.Register(141, "kitty not listed")
	ErrNotOwner          = errors.Register(142, "not the kitty owner")
	ErrOwnerCannotBuyOwn = errors.Register(143, "owner cannot buy own kitty")

	// ErrTransferFailed marks a failed balance move during a purchase. The
	// marked error keeps its own root, so callers can still tell an
	// insufficient balance from an existential deposit violation.
	ErrTransferFailed = errors.Register(144, "transfer failed")

	// ErrIDSpaceExhausted is returned once all 2^128-1 identifiers have
	// been allocated. It is a fault of the chain, not of the request.
	ErrIDSpaceExhausted = errors.Register(145, "kitty id space exhausted")
)
