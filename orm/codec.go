package orm

import (
	amino "github.com/tendermint/go-amino"

	"github.com/korzewski/weave/errors"
)

var cdc = amino.NewCodec()

// Marshal serializes a model using the go-amino binary encoding.
func Marshal(m Model) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	if bz == nil {
		bz = []byte{}
	}
	return bz, nil
}

// Unmarshal loads raw into the model, which must be a pointer. Empty input
// leaves the zero value.
func Unmarshal(raw []byte, m Model) error {
	if len(raw) == 0 {
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, m); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
