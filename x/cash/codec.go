package cash

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterCodec registers the messages of this package. The codec must
// already know the weave.Msg interface.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&SendMsg{}, "cash/send", nil)
}
