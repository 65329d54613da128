package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a valid random weave address generated on the fly.
func RandomAddr(t testing.TB) weave.Address {
	t.Helper()
	raw := make([]byte, weave.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := weave.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not a valid weave address: %s", err)
	}
	return a
}

// ParseAddress decodes a bech32 or hex encoded address, failing the test
// on error.
func ParseAddress(t testing.TB, encoded string) weave.Address {
	t.Helper()
	addr, err := weave.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return addr
}
