package cash

import (
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/gconf"
)

// gconfPkg is the key of the cash configuration in the genesis "conf"
// section and in the store.
const gconfPkg = "cash"

// Configuration of the cash extension.
type Configuration struct {
	// Ticker is the only currency accounts hold.
	Ticker string `json:"ticker"`
	// MinimalBalance is the existential deposit. Zero disables it.
	MinimalBalance coin.Coin `json:"minimal_balance"`
}

// Validate checks the ticker and that the minimal balance is a non
// negative amount of it.
func (c *Configuration) Validate() error {
	if !coin.IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.Ticker)
	}
	if c.MinimalBalance.IsZero() {
		return nil
	}
	if err := c.MinimalBalance.Validate(); err != nil {
		return errors.Wrap(err, "minimal balance")
	}
	if !c.MinimalBalance.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "minimal balance cannot be negative")
	}
	if c.MinimalBalance.Ticker != c.Ticker {
		return errors.Wrap(errors.ErrCurrency, "minimal balance ticker")
	}
	return nil
}

// SaveConfiguration validates and stores conf.
func SaveConfiguration(db gconf.Store, conf Configuration) error {
	return gconf.Save(db, gconfPkg, &conf)
}

// LoadConfiguration reads the configuration stored at genesis.
func LoadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, gconfPkg, &conf); err != nil {
		return conf, errors.Wrap(err, "load cash configuration")
	}
	return conf, nil
}
