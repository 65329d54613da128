package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/korzewski/weave/app"
	"github.com/korzewski/weave/errors"
)

const flagChainID = "chain-id"

// GenesisDoc is the part of a tendermint genesis file kittyd reads.
type GenesisDoc struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

func (c *cli) initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <genesis.json>",
		Short: "Load the genesis file into an empty state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := ioutil.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			var doc GenesisDoc
			if err := json.Unmarshal(raw, &doc); err != nil {
				return errors.Wrap(errors.ErrInput, err.Error())
			}
			if id, _ := cmd.Flags().GetString(flagChainID); id != "" {
				doc.ChainID = id
			}

			a, closeDB, err := c.openApp()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := initChain(a, doc); err != nil {
				return err
			}
			c.logger.Info("Genesis loaded", "chain_id", doc.ChainID)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.ChainID)
			return err
		},
	}
	cmd.Flags().String(flagChainID, "", "override the chain id of the genesis file")
	return cmd
}

// initChain applies the genesis and commits it as the first version.
// The application panics on invalid genesis, the panic is returned as an
// error.
func initChain(a *app.Application, doc GenesisDoc) (err error) {
	defer errors.Recover(&err)
	a.InitChain(abci.RequestInitChain{
		ChainId:       doc.ChainID,
		AppStateBytes: doc.AppState,
	})
	a.Commit()
	return nil
}
