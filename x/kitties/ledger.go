package kitties

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

// Ledger is the authoritative record of kitties and their owners. It does
// no authorization of its own.
type Ledger struct {
	dna      DNAGenerator
	kitties  KittyBucket
	accounts AccountBucket
	counters CounterBucket
}

// NewLedger returns a ledger that draws DNA from rand.
func NewLedger(rand Randomness) Ledger {
	return Ledger{
		dna:      NewDNAGenerator(rand),
		kitties:  NewKittyBucket(),
		accounts: NewAccountBucket(),
		counters: NewCounterBucket(),
	}
}

// Mint draws a seed and DNA, allocates the next id and records the new
// kitty for owner. Nothing is written if any step fails.
func (l Ledger) Mint(ctx weave.Context, db weave.KVStore, sink weave.EventSink, owner weave.Address) (*Kitty, error) {
	counters, err := l.counters.Load(db)
	if err != nil {
		return nil, err
	}
	dna, err := l.dna.Generate(ctx, counters.DrawSeed())
	if err != nil {
		return nil, err
	}
	kitty, err := l.create(db, counters, owner, dna)
	if err != nil {
		return nil, err
	}
	sink.Emit(KittyCreated{Creator: owner, Kitty: *kitty})
	return kitty, nil
}

// Create records a kitty with the given DNA under a freshly allocated id.
func (l Ledger) Create(db weave.KVStore, owner weave.Address, dna weave.Hash) (*Kitty, error) {
	counters, err := l.counters.Load(db)
	if err != nil {
		return nil, err
	}
	return l.create(db, counters, owner, dna)
}

func (l Ledger) create(db weave.KVStore, counters *Counters, owner weave.Address, dna weave.Hash) (*Kitty, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	id, err := counters.NextKittyID()
	if err != nil {
		return nil, err
	}
	kitty := &Kitty{ID: id, Owner: owner, DNA: dna}
	if err := l.kitties.SaveKitty(db, kitty); err != nil {
		return nil, errors.Wrap(err, "save kitty")
	}
	if err := l.accounts.Append(db, owner, id); err != nil {
		return nil, errors.Wrap(err, "account")
	}
	if err := l.counters.Store(db, counters); err != nil {
		return nil, errors.Wrap(err, "counters")
	}
	return kitty, nil
}

// Get returns the kitty or ErrNotFound.
func (l Ledger) Get(db weave.ReadOnlyKVStore, id KittyID) (*Kitty, error) {
	return l.kitties.GetKitty(db, id)
}

// TransferOwner hands the kitty over to newOwner.
func (l Ledger) TransferOwner(db weave.KVStore, id KittyID, newOwner weave.Address) error {
	kitty, err := l.kitties.GetKitty(db, id)
	if err != nil {
		return err
	}
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	kitty.Owner = newOwner
	return l.kitties.SaveKitty(db, kitty)
}

// Owned returns the kitties owner holds right now, ordered by id.
func (l Ledger) Owned(db weave.ReadOnlyKVStore, owner weave.Address) ([]*Kitty, error) {
	return l.kitties.ByOwner(db, owner)
}

// Minted returns the ids of all kitties owner has minted, in minting order,
// including those sold since.
func (l Ledger) Minted(db weave.ReadOnlyKVStore, owner weave.Address) ([]KittyID, error) {
	acc, err := l.accounts.GetAccount(db, owner)
	if err != nil {
		return nil, err
	}
	return acc.Kitties, nil
}

// Counters returns the allocator and sequencer state.
func (l Ledger) Counters(db weave.ReadOnlyKVStore) (*Counters, error) {
	return l.counters.Load(db)
}

// SetCounters overwrites the allocator and sequencer state. It is meant
// for genesis only.
func (l Ledger) SetCounters(db weave.KVStore, c *Counters) error {
	return l.counters.Store(db, c)
}
