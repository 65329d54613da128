package sigs

import "github.com/korzewski/weave/errors"

// x/sigs reserves 120 ~ 129.
var (
	// ErrInvalidSequence is returned when the signature sequence does not
	// match the one expected for the signer.
	ErrInvalidSequence = errors.Register(120, "invalid sequence")
)
