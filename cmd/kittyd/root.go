package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/korzewski/weave/app"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/store/iavl"
	"github.com/korzewski/weave/x/entropy"
)

// cli carries the state shared by all commands of one invocation.
type cli struct {
	v      *viper.Viper
	conf   Config
	logger log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:               "kittyd",
		Short:             "Kitty ledger and marketplace",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	flags := root.PersistentFlags()
	flags.String(flagHome, defaultHome(), "directory holding the state, keys and kittyd.toml")
	flags.String(flagLogLevel, "info", "log level: debug, info, error or none")
	flags.Bool(flagDebug, false, "return stack traces with failed transactions")
	flags.String(flagDomain, "kittyd", "domain separating the randomness of this network")
	if err := c.v.BindPFlags(flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		c.keysCmd(),
		c.initCmd(),
		c.startCmd(),
		c.createCmd(),
		c.listCmd(),
		c.cancelCmd(),
		c.buyCmd(),
		c.sendCmd(),
		c.showCmd(),
		c.ownedCmd(),
		c.mintedCmd(),
		c.listingsCmd(),
		c.balanceCmd(),
		versionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig(c.v)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), conf.LogLevel)
	if err != nil {
		return err
	}
	c.conf = conf
	c.logger = logger.With("module", "kittyd")
	return nil
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), opt), nil
}

// openApp loads the application from the state in the home directory.
// Call the returned function to release the database.
func (c *cli) openApp() (*app.Application, func(), error) {
	db, err := iavl.NewCommitStore(c.conf.Home, "kittyd")
	if err != nil {
		return nil, nil, err
	}
	a, err := app.NewApplication(app.Config{
		Name:        "kittyd",
		Store:       db,
		Decoder:     app.DecodeTx,
		Handler:     app.Stack(entropy.NewBlockSource(c.conf.EntropyDomain)),
		Initializer: app.Initializers(),
		Logger:      c.logger,
		Debug:       c.conf.Debug,
	})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return a, db.Close, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kittyd version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), Version+"\n")
			return err
		},
	}
}
