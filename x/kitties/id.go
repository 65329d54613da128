package kitties

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"math/big"

	"github.com/korzewski/weave/errors"
)

// KittyIDLength is the size of the binary representation of a KittyID.
const KittyIDLength = 16

// KittyID is an unsigned 128 bit identifier. The zero value is never
// assigned to a kitty.
type KittyID struct {
	Hi uint64
	Lo uint64
}

// MaxKittyID is the last identifier that can be allocated.
var MaxKittyID = KittyID{Hi: math.MaxUint64, Lo: math.MaxUint64}

// NewKittyID returns the identifier with the given value.
func NewKittyID(n uint64) KittyID {
	return KittyID{Lo: n}
}

// IsZero returns true for the unassigned identifier.
func (id KittyID) IsZero() bool {
	return id.Hi == 0 && id.Lo == 0
}

// Next returns the identifier following id. It never wraps around.
func (id KittyID) Next() (KittyID, error) {
	if id == MaxKittyID {
		return id, errors.Wrap(ErrIDSpaceExhausted, "next kitty id")
	}
	next := KittyID{Hi: id.Hi, Lo: id.Lo + 1}
	if next.Lo == 0 {
		next.Hi++
	}
	return next, nil
}

// Less reports whether id sorts before other.
func (id KittyID) Less(other KittyID) bool {
	if id.Hi != other.Hi {
		return id.Hi < other.Hi
	}
	return id.Lo < other.Lo
}

// Bytes returns the big endian encoding. It is used as the database key,
// so the byte order matches the numeric order.
func (id KittyID) Bytes() []byte {
	raw := make([]byte, KittyIDLength)
	binary.BigEndian.PutUint64(raw[:8], id.Hi)
	binary.BigEndian.PutUint64(raw[8:], id.Lo)
	return raw
}

// KittyIDFromBytes decodes the output of Bytes.
func KittyIDFromBytes(raw []byte) (KittyID, error) {
	if len(raw) != KittyIDLength {
		return KittyID{}, errors.Wrapf(errors.ErrInput, "kitty id must be %d bytes, got %d", KittyIDLength, len(raw))
	}
	return KittyID{
		Hi: binary.BigEndian.Uint64(raw[:8]),
		Lo: binary.BigEndian.Uint64(raw[8:]),
	}, nil
}

func (id KittyID) bigInt() *big.Int {
	n := new(big.Int).SetUint64(id.Hi)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(id.Lo))
}

// String returns the decimal representation.
func (id KittyID) String() string {
	return id.bigInt().String()
}

// ParseKittyID decodes a decimal identifier.
func ParseKittyID(s string) (KittyID, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return KittyID{}, errors.Wrapf(errors.ErrInput, "invalid kitty id %q", s)
	}
	if n.Sign() < 0 || n.BitLen() > 128 {
		return KittyID{}, errors.Wrapf(errors.ErrOverflow, "kitty id %q out of range", s)
	}
	lo := new(big.Int).And(n, new(big.Int).SetUint64(math.MaxUint64))
	hi := new(big.Int).Rsh(n, 64)
	return KittyID{Hi: hi.Uint64(), Lo: lo.Uint64()}, nil
}

// Validate rejects the zero identifier.
func (id KittyID) Validate() error {
	if id.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "kitty id")
	}
	return nil
}

// MarshalJSON encodes the identifier as a decimal string, as it does not
// fit into a JSON number.
func (id KittyID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (id *KittyID) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrInput, "kitty id must be a string or a number")
		}
		s = n.String()
	}
	parsed, err := ParseKittyID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
