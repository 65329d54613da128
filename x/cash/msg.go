package cash

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
)

const maxMemoSize = 128

var _ weave.Msg = (*SendMsg)(nil)

// SendMsg moves Amount from Source to Destination. Unless KeepAlive is set
// the source account may be reaped.
type SendMsg struct {
	Source      weave.Address
	Destination weave.Address
	Amount      coin.Coin
	Memo        string
	KeepAlive   bool
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var err error
	if !s.Amount.IsPositive() {
		err = errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", s.Amount)
	} else {
		err = errors.Append(err, errors.Wrap(s.Amount.Validate(), "amount"))
	}
	err = errors.Append(err, errors.Wrap(s.Source.Validate(), "source"))
	err = errors.Append(err, errors.Wrap(s.Destination.Validate(), "destination"))
	if len(s.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInput, "memo too long"))
	}
	return err
}

// Mode returns the existence requirement requested for the source.
func (s *SendMsg) Mode() ExistenceRequirement {
	if s.KeepAlive {
		return KeepAlive
	}
	return AllowDeath
}
