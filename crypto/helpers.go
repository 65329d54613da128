/*
Package crypto holds the key types used to sign transactions.

Only ed25519 is supported. Keys and signatures are plain structs so they can
be serialized with the amino codec used by the rest of the application.
*/
package crypto

import (
	"github.com/korzewski/weave"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// Address returns the address of the account controlled by given key.
func Address(pub *PublicKey) weave.Address {
	return pub.Condition().Address()
}
