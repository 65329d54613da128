package kitties

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

const optKey = "kitties"

// GenesisKitty is a kitty minted at genesis.
type GenesisKitty struct {
	Owner weave.Address `json:"owner"`
	DNA   weave.Hash    `json:"dna"`
}

// Genesis is the "kitties" section of the genesis file. Counters, if
// given, are applied before the kitties are minted, so the first
// preminted kitty gets Counters.LastID + 1.
type Genesis struct {
	Counters *Counters      `json:"counters"`
	Kitties  []GenesisKitty `json:"kitties"`
}

// Initializer loads the kitty state from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the counters and the preminted kitties.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	// Preminted kitties carry their DNA, no randomness is needed.
	ledger := NewLedger(nil)
	if gen.Counters != nil {
		if err := ledger.SetCounters(db, gen.Counters); err != nil {
			return errors.Wrap(err, "counters")
		}
	}
	for i, k := range gen.Kitties {
		if _, err := ledger.Create(db, k.Owner, k.DNA); err != nil {
			return errors.Wrapf(err, "kitty %d", i)
		}
	}
	return nil
}
