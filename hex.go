package weave

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/korzewski/weave/errors"
)

// HashLength is the size of a Hash in bytes.
const HashLength = 32

// Hash is a 32 byte digest, used for kitty DNA and random values. It is
// represented as upper case hex in JSON.
type Hash [HashLength]byte

// String returns the upper case hex encoding.
func (h Hash) String() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// IsZero returns true if all bytes are zero.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalJSON encodes the hash as a hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a hex string of exactly HashLength bytes.
func (h *Hash) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "hash must be a string")
	}
	parsed, err := ParseHash(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash decodes a hex encoded hash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	raw, err := hex.DecodeString(s)
	if err != nil {
		return h, errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(raw) != HashLength {
		return h, errors.Wrapf(errors.ErrInput, "hash must be %d bytes, got %d", HashLength, len(raw))
	}
	copy(h[:], raw)
	return h, nil
}
