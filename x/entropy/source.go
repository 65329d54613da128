package entropy

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

// BlockSource derives random values from the current block header.
type BlockSource struct {
	domain []byte
}

// NewBlockSource returns a source whose output is separated from other
// sources by the given domain tag.
func NewBlockSource(domain string) BlockSource {
	return BlockSource{domain: []byte(domain)}
}

// Random returns blake2b-256 over the previous block id, the application
// hash, the height and the subject. The same subject drawn twice within
// one block returns the same value.
func (s BlockSource) Random(ctx weave.Context, subject []byte) (weave.Hash, error) {
	header, ok := weave.GetHeader(ctx)
	if !ok {
		return weave.Hash{}, errors.Wrap(errors.ErrState, "block header not in context")
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return weave.Hash{}, errors.Wrap(err, "blake2b")
	}
	var height [8]byte
	binary.BigEndian.PutUint64(height[:], uint64(header.Height))

	h.Write(s.domain)
	h.Write(header.LastBlockId.Hash)
	h.Write(header.AppHash)
	h.Write(height[:])
	h.Write(subject)

	var out weave.Hash
	copy(out[:], h.Sum(nil))
	return out, nil
}
