package main

import (
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	cmn "github.com/tendermint/tendermint/libs/common"

	"github.com/korzewski/weave/errors"
)

func (c *cli) startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the application to a tendermint node over ABCI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, closeDB, err := c.openApp()
			if err != nil {
				return err
			}
			defer closeDB()

			bind := c.v.GetString(flagBind)
			c.logger.Info("Starting ABCI app", "bind", bind)
			svr, err := server.NewServer(bind, "socket", a)
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "cannot listen on %s: %s", bind, err)
			}
			svr.SetLogger(c.logger.With("module", "abci-server"))
			if err := svr.Start(); err != nil {
				return errors.Wrap(errors.ErrState, err.Error())
			}

			// The signal handler exits the process once it has stopped
			// the server. Cancelling the command context stops it too.
			cmn.TrapSignal(c.logger, func() {
				svr.Stop()
				closeDB()
			})
			<-cmd.Context().Done()

			c.logger.Info("Stopping ABCI app", "bind", bind)
			if err := svr.Stop(); err != nil {
				return errors.Wrap(errors.ErrState, err.Error())
			}
			return nil
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address the ABCI server listens on")
	if err := c.v.BindPFlag(flagBind, cmd.Flags().Lookup(flagBind)); err != nil {
		panic(err)
	}
	return cmd
}
