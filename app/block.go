package app

import (
	"time"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/korzewski/weave/errors"
)

// LocalBlock runs txs as a single block on top of the last commit and
// commits it. It is used when the application runs without a consensus
// engine: the header is derived from the previous commit.
func (a *Application) LocalBlock(now time.Time, txs ...[]byte) ([]abci.ResponseDeliverTx, error) {
	chainID := a.ChainID()
	if chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "genesis not loaded")
	}
	last, err := a.CommitInfo()
	if err != nil {
		return nil, err
	}
	header := abci.Header{
		ChainID:     chainID,
		Height:      last.Version + 1,
		Time:        now.UTC(),
		NumTxs:      int64(len(txs)),
		LastBlockId: abci.BlockID{Hash: last.Hash},
		AppHash:     last.Hash,
	}

	a.BeginBlock(abci.RequestBeginBlock{Header: header})
	results := make([]abci.ResponseDeliverTx, len(txs))
	for i, tx := range txs {
		results[i] = a.DeliverTx(tx)
	}
	a.EndBlock(abci.RequestEndBlock{Height: header.Height})
	a.Commit()
	return results, nil
}
