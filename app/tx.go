package app

import (
	amino "github.com/tendermint/go-amino"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/crypto"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/x/cash"
	"github.com/korzewski/weave/x/kitties"
	"github.com/korzewski/weave/x/sigs"
)

// Tx is the transaction format of kittyd: a single message and the
// signatures over it.
type Tx struct {
	Msg        weave.Msg
	Signatures []*sigs.StdSignature
}

var (
	_ weave.Tx      = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

var cdc = MakeCodec()

// MakeCodec returns a codec that knows every message kittyd routes.
func MakeCodec() *amino.Codec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*weave.Msg)(nil), nil)
	cash.RegisterCodec(cdc)
	kitties.RegisterCodec(cdc)
	return cdc
}

// GetMsg returns the message of the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the encoding of the transaction without the
// signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	bz, err := cdc.MarshalBinaryBare(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return bz, nil
}

// Sign appends a signature of key for the given signer sequence.
func (tx *Tx) Sign(key *crypto.PrivateKey, chainID string, seq int64) error {
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// EncodeTx serializes tx as it is sent to the node.
func EncodeTx(tx *Tx) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return bz, nil
}

// DecodeTx is the weave.TxDecoder of kittyd.
func DecodeTx(raw []byte) (weave.Tx, error) {
	var tx Tx
	if err := cdc.UnmarshalBinaryBare(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return &tx, nil
}

var _ weave.TxDecoder = DecodeTx
