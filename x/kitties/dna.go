package kitties

import (
	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

// Randomness is the oracle kitty DNA is drawn from. The same subject may
// produce the same value within a block, so callers pass a fresh seed for
// every draw.
type Randomness interface {
	Random(ctx weave.Context, subject []byte) (weave.Hash, error)
}

// DNAGenerator draws kitty DNA. The output is unpredictable only as far as
// the oracle is. Do not rely on it for anything adversarial.
type DNAGenerator struct {
	rand Randomness
}

// NewDNAGenerator returns a generator reading from the given oracle.
func NewDNAGenerator(rand Randomness) DNAGenerator {
	return DNAGenerator{rand: rand}
}

// Generate returns the DNA for the given seed.
func (g DNAGenerator) Generate(ctx weave.Context, seed []byte) (weave.Hash, error) {
	dna, err := g.rand.Random(ctx, seed)
	if err != nil {
		return weave.Hash{}, errors.Wrap(err, "draw dna")
	}
	return dna, nil
}
