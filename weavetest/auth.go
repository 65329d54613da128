package weavetest

import (
	"context"

	"github.com/korzewski/weave"
)

// Auth is a static x.Authenticator mock. Every condition referenced by
// Signer or Signers is treated as having signed the transaction.
type Auth struct {
	// Signer is a shortcut for the common single signer case.
	Signer weave.Condition
	// Signers lists any additional signers.
	Signers []weave.Condition
}

// GetConditions returns all configured signers.
func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

// HasAddress returns true if any configured signer maps to addr.
func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator mock that reads the signers from the
// context, so a single instance can authenticate different callers.
type CtxAuth struct {
	// Key under which the conditions are stored in the context.
	Key string
}

// SetConditions returns a context carrying the given signers.
func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, a.Key, conds)
}

// GetConditions returns the signers stored in the context, if any.
func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	conds, _ := ctx.Value(a.Key).([]weave.Condition)
	return conds
}

// HasAddress returns true if any signer stored in the context maps to addr.
func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
