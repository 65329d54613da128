package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/korzewski/weave/errors"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagDebug    = "debug"
	flagBind     = "bind"
	flagDomain   = "entropy-domain"

	envPrefix  = "KITTYD"
	configName = "kittyd"
)

// Config of a kittyd process. Values come from flags, KITTYD_* environment
// variables and an optional kittyd.toml in the home directory, in that
// order of precedence.
type Config struct {
	// Home holds the state database, the key files and kittyd.toml.
	Home     string `mapstructure:"home"`
	LogLevel string `mapstructure:"log-level"`
	// Debug returns stack traces with failed transactions.
	Debug bool `mapstructure:"debug"`
	// Bind is the address the ABCI server listens on.
	Bind string `mapstructure:"bind"`
	// EntropyDomain separates the randomness of different networks.
	EntropyDomain string `mapstructure:"entropy-domain"`
}

func defaultHome() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".kittyd")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(flagHome, defaultHome())
	v.SetDefault(flagLogLevel, "info")
	v.SetDefault(flagDebug, false)
	v.SetDefault(flagBind, "tcp://localhost:26658")
	v.SetDefault(flagDomain, "kittyd")
}

// loadConfig resolves the configuration. A missing config file is not an
// error.
func loadConfig(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(v.GetString(flagHome))

	var conf Config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return conf, errors.Wrap(errors.ErrInput, err.Error())
		}
	}
	if err := v.Unmarshal(&conf); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	if conf.Home == "" {
		return conf, errors.Wrap(errors.ErrEmpty, "home directory")
	}
	return conf, nil
}
