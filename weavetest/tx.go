package weavetest

import "github.com/korzewski/weave"

// Tx is a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg weave.Msg
	// Err if set is returned by GetMsg.
	Err error
}

var _ weave.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message with a configurable route and validation result.
type Msg struct {
	// RoutePath is returned by Path and consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ weave.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
