package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/x/cash"
	"github.com/korzewski/weave/x/kitties"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// query runs fn against the committed state.
func (c *cli) query(cmd *cobra.Command, fn func(db weave.ReadOnlyKVStore) (interface{}, error)) error {
	a, closeDB, err := c.openApp()
	if err != nil {
		return err
	}
	defer closeDB()

	res, err := fn(a.ReadStore())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}

// KittyView is a kitty together with its asking price, if listed.
type KittyView struct {
	kitties.Kitty
	Price *coin.Coin `json:"price,omitempty"`
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kitty-id>",
		Short: "Print a kitty",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := kitties.ParseKittyID(args[0])
			if err != nil {
				return err
			}
			return c.query(cmd, func(db weave.ReadOnlyKVStore) (interface{}, error) {
				ledger := kitties.NewLedger(nil)
				k, err := ledger.Get(db, id)
				if err != nil {
					return nil, err
				}
				view := KittyView{Kitty: *k}
				listing, err := kitties.NewListingBucket().GetListing(db, id)
				if err != nil {
					return nil, err
				}
				if listing != nil {
					view.Price = &listing.Price
				}
				return view, nil
			})
		},
	}
}

func (c *cli) ownedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "owned <address|key>",
		Short: "Print the kitties currently owned by an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := c.resolveAddress(args[0])
			if err != nil {
				return err
			}
			return c.query(cmd, func(db weave.ReadOnlyKVStore) (interface{}, error) {
				owned, err := kitties.NewLedger(nil).Owned(db, owner)
				if owned == nil {
					owned = []*kitties.Kitty{}
				}
				return owned, err
			})
		},
	}
}

func (c *cli) mintedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minted <address|key>",
		Short: "Print the ids of all kitties minted by an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := c.resolveAddress(args[0])
			if err != nil {
				return err
			}
			return c.query(cmd, func(db weave.ReadOnlyKVStore) (interface{}, error) {
				ids, err := kitties.NewLedger(nil).Minted(db, owner)
				if ids == nil {
					ids = []kitties.KittyID{}
				}
				return ids, err
			})
		},
	}
}

func (c *cli) listingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listings",
		Short: "Print all kitties for sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.query(cmd, func(db weave.ReadOnlyKVStore) (interface{}, error) {
				market := kitties.NewMarket(kitties.NewLedger(nil), nil)
				listings, err := market.Listings(db)
				if listings == nil {
					listings = []*kitties.Listing{}
				}
				return listings, err
			})
		},
	}
}

// BalanceView is the output of the balance command.
type BalanceView struct {
	Address weave.Address `json:"address"`
	Balance coin.Coin     `json:"balance"`
}

func (c *cli) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address|key>",
		Short: "Print the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := c.resolveAddress(args[0])
			if err != nil {
				return err
			}
			return c.query(cmd, func(db weave.ReadOnlyKVStore) (interface{}, error) {
				balance, err := cash.NewController().Balance(db, addr)
				return BalanceView{Address: addr, Balance: balance}, err
			})
		},
	}
}
