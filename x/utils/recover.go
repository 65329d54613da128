package utils

import (
	"fmt"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

// Recovery turns a panic anywhere below it into an ErrPanic result and
// logs the panic value with the path of the message that caused it. It
// is the outermost decorator of the application stack, so a broken
// handler fails its transaction instead of halting the node.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

// NewRecovery returns a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (_ *weave.CheckResult, err error) {
	defer recoverTx(ctx, tx, "check", &err)
	return next.Check(ctx, store, tx)
}

func (r Recovery) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (_ *weave.DeliverResult, err error) {
	defer recoverTx(ctx, tx, "deliver", &err)
	return next.Deliver(ctx, store, tx)
}

// recoverTx must be deferred directly, recover has no effect otherwise.
func recoverTx(ctx weave.Context, tx weave.Tx, phase string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	weave.GetLogger(ctx).Error("Recovered from panic",
		"phase", phase,
		"path", weave.GetPath(tx),
		"panic", fmt.Sprint(r),
	)
}
