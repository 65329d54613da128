package main

import (
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/app"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/x/cash"
	"github.com/korzewski/weave/x/kitties"
	"github.com/korzewski/weave/x/sigs"
)

const (
	flagFrom      = "from"
	flagAmount    = "amount"
	flagMemo      = "memo"
	flagKeepAlive = "keep-alive"
)

// TxResult is printed for every executed transaction.
type TxResult struct {
	Height int64             `json:"height"`
	Code   uint32            `json:"code"`
	Log    string            `json:"log,omitempty"`
	Kitty  *kitties.KittyID  `json:"kitty,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

func addFrom(cmd *cobra.Command) {
	cmd.Flags().String(flagFrom, "", "name of the key signing the transaction")
	if err := cmd.MarkFlagRequired(flagFrom); err != nil {
		panic(err)
	}
}

func (c *cli) createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Mint a kitty owned by the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.deliver(cmd, &kitties.CreateKittyMsg{})
		},
	}
	addFrom(cmd)
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <kitty-id> <price>",
		Short: "Offer a kitty for sale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := kitties.ParseKittyID(args[0])
			if err != nil {
				return err
			}
			price, err := coin.ParseHumanFormat(args[1])
			if err != nil {
				return err
			}
			return c.deliver(cmd, &kitties.ListKittyMsg{KittyID: id, Price: price})
		},
	}
	addFrom(cmd)
	return cmd
}

func (c *cli) cancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <kitty-id>",
		Short: "Withdraw a kitty from sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := kitties.ParseKittyID(args[0])
			if err != nil {
				return err
			}
			return c.deliver(cmd, &kitties.CancelListingMsg{KittyID: id})
		},
	}
	addFrom(cmd)
	return cmd
}

func (c *cli) buyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <kitty-id>",
		Short: "Buy a listed kitty for its asking price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := kitties.ParseKittyID(args[0])
			if err != nil {
				return err
			}
			return c.deliver(cmd, &kitties.BuyKittyMsg{KittyID: id})
		},
	}
	addFrom(cmd)
	return cmd
}

func (c *cli) sendCmd() *cobra.Command {
	var amount coin.Coin
	cmd := &cobra.Command{
		Use:   "send <recipient>",
		Short: "Transfer coins to an address or a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := c.resolveAddress(args[0])
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetString(flagFrom)
			key, err := c.loadKey(from)
			if err != nil {
				return err
			}
			memo, _ := cmd.Flags().GetString(flagMemo)
			keepAlive, _ := cmd.Flags().GetBool(flagKeepAlive)
			return c.deliver(cmd, &cash.SendMsg{
				Source:      key.PublicKey().Condition().Address(),
				Destination: dst,
				Amount:      amount,
				Memo:        memo,
				KeepAlive:   keepAlive,
			})
		},
	}
	addFrom(cmd)
	cmd.Flags().Var(&amount, flagAmount, `amount to send, for example "10.5 KIT"`)
	cmd.Flags().String(flagMemo, "", "note attached to the transfer")
	cmd.Flags().Bool(flagKeepAlive, false, "fail instead of reaping the sender account")
	return cmd
}

// deliver signs msg with the --from key and executes it as a single
// block.
func (c *cli) deliver(cmd *cobra.Command, msg weave.Msg) error {
	from, _ := cmd.Flags().GetString(flagFrom)
	key, err := c.loadKey(from)
	if err != nil {
		return err
	}

	a, closeDB, err := c.openApp()
	if err != nil {
		return err
	}
	defer closeDB()

	chainID := a.ChainID()
	if chainID == "" {
		return errors.Wrap(errors.ErrState, "genesis not loaded, run kittyd init first")
	}
	signer := key.PublicKey().Condition().Address()
	seq, err := sigs.NewBucket().Sequence(a.ReadStore(), signer)
	if err != nil {
		return err
	}

	tx := &app.Tx{Msg: msg}
	if err := tx.Sign(key, chainID, seq); err != nil {
		return err
	}
	raw, err := app.EncodeTx(tx)
	if err != nil {
		return err
	}
	results, err := a.LocalBlock(time.Now(), raw)
	if err != nil {
		return err
	}
	info, err := a.CommitInfo()
	if err != nil {
		return err
	}

	res := txResult(info.Version, results[0], msg)
	if err := printJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if res.Code != 0 {
		return pkgerrors.Errorf("transaction failed with code %d", res.Code)
	}
	return nil
}

func txResult(height int64, res abci.ResponseDeliverTx, msg weave.Msg) TxResult {
	out := TxResult{
		Height: height,
		Code:   res.Code,
		Log:    res.Log,
	}
	if res.Code != 0 {
		return out
	}
	if _, ok := msg.(*kitties.CreateKittyMsg); ok {
		if id, err := kitties.KittyIDFromBytes(res.Data); err == nil {
			out.Kitty = &id
		}
	}
	if len(res.Tags) > 0 {
		out.Tags = make(map[string]string, len(res.Tags))
		for _, t := range res.Tags {
			if string(t.Key) == "event" {
				continue
			}
			out.Tags[string(t.Key)] = string(t.Value)
		}
	}
	return out
}
