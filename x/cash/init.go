package cash

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
type GenesisAccount struct {
	Address weave.Address `json:"address"`
	Balance coin.Coin     `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the configuration and the initial balances.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, gconfPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if acct.Balance.Ticker != conf.Ticker {
			return errors.Wrapf(errors.ErrCurrency, "account %d holds %s", i, acct.Balance.Ticker)
		}
		if err := ctrl.IssueCoins(db, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
