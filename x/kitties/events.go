package kitties

import (
	cmn "github.com/tendermint/tendermint/libs/common"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
)

func kittyAttrs(k Kitty) []cmn.KVPair {
	return []cmn.KVPair{
		{Key: []byte("kitty_id"), Value: []byte(k.ID.String())},
		{Key: []byte("owner"), Value: []byte(k.Owner.String())},
		{Key: []byte("dna"), Value: []byte(k.DNA.String())},
	}
}

// KittyCreated is emitted when a kitty is minted.
type KittyCreated struct {
	Creator weave.Address
	Kitty   Kitty
}

func (KittyCreated) Kind() string { return "kitty_created" }

func (e KittyCreated) Attributes() []cmn.KVPair {
	return append(kittyAttrs(e.Kitty),
		cmn.KVPair{Key: []byte("creator"), Value: []byte(e.Creator.String())})
}

// KittyForSale is emitted when a kitty gets listed.
type KittyForSale struct {
	Seller weave.Address
	Kitty  Kitty
	Price  coin.Coin
}

func (KittyForSale) Kind() string { return "kitty_for_sale" }

func (e KittyForSale) Attributes() []cmn.KVPair {
	return append(kittyAttrs(e.Kitty),
		cmn.KVPair{Key: []byte("seller"), Value: []byte(e.Seller.String())},
		cmn.KVPair{Key: []byte("price"), Value: []byte(e.Price.String())})
}

// CancelKittyForSale is emitted when a listing is withdrawn.
type CancelKittyForSale struct {
	Seller weave.Address
	Kitty  Kitty
}

func (CancelKittyForSale) Kind() string { return "cancel_kitty_for_sale" }

func (e CancelKittyForSale) Attributes() []cmn.KVPair {
	return append(kittyAttrs(e.Kitty),
		cmn.KVPair{Key: []byte("seller"), Value: []byte(e.Seller.String())})
}

// KittyWasBought is emitted after a purchase. Kitty already carries the
// buyer as the owner.
type KittyWasBought struct {
	Buyer  weave.Address
	Seller weave.Address
	Kitty  Kitty
	Price  coin.Coin
}

func (KittyWasBought) Kind() string { return "kitty_was_bought" }

func (e KittyWasBought) Attributes() []cmn.KVPair {
	return append(kittyAttrs(e.Kitty),
		cmn.KVPair{Key: []byte("buyer"), Value: []byte(e.Buyer.String())},
		cmn.KVPair{Key: []byte("seller"), Value: []byte(e.Seller.String())},
		cmn.KVPair{Key: []byte("price"), Value: []byte(e.Price.String())})
}

var (
	_ weave.Event = KittyCreated{}
	_ weave.Event = KittyForSale{}
	_ weave.Event = CancelKittyForSale{}
	_ weave.Event = KittyWasBought{}
)
