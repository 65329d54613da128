package cash

import "github.com/korzewski/weave/errors"

// x/cash reserves 130 ~ 139.
var (
	// ErrExistentialDeposit is returned when a transfer would leave an
	// account with a balance below the existential deposit.
	ErrExistentialDeposit = errors.Register(130, "existential deposit")
)
