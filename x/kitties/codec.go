package kitties

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterCodec registers all messages of this package. The codec must
// already know the weave.Msg interface.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&CreateKittyMsg{}, pathCreateKitty, nil)
	cdc.RegisterConcrete(&ListKittyMsg{}, pathListKitty, nil)
	cdc.RegisterConcrete(&CancelListingMsg{}, pathCancelListing, nil)
	cdc.RegisterConcrete(&BuyKittyMsg{}, pathBuyKitty, nil)
}
