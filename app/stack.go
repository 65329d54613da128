package app

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/x/cash"
	"github.com/korzewski/weave/x/kitties"
	"github.com/korzewski/weave/x/sigs"
	"github.com/korzewski/weave/x/utils"
)

// Stack returns the handler of kittyd: cash transfers and the kitty
// market behind signature verification and a savepoint.
func Stack(rand kitties.Randomness) weave.Handler {
	auth := sigs.Authenticate{}
	bank := cash.NewController()
	ledger := kitties.NewLedger(rand)

	r := NewRouter()
	cash.RegisterRoutes(r, auth, bank)
	kitties.RegisterRoutes(r, auth, ledger, kitties.NewMarket(ledger, bank))

	return ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)
}

// Initializers loads the genesis of all extensions of kittyd.
func Initializers() weave.Initializer {
	return ChainInitializers(cash.Initializer{}, kitties.Initializer{})
}

// ChainInitializers runs all initializers in order, aborting at the first
// error.
func ChainInitializers(inits ...weave.Initializer) weave.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []weave.Initializer

func (c chainInitializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
