package crypto

import (
	"bytes"
	"testing"

	"github.com/korzewski/weave/weavetest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig.Ed25519, sig2.Ed25519) {
		t.Fatal("different messages produce the same signature")
	}

	assert.Equal(t, true, public.Verify(msg, sig))
	assert.Equal(t, true, public.Verify(msg2, sig2))
	assert.Equal(t, false, public.Verify(msg, sig2))
	assert.Equal(t, false, public.Verify(msg2, sig))
	assert.Equal(t, false, public.Verify(msg, nil))

	other := GenPrivKeyEd25519().PublicKey()
	assert.Equal(t, false, other.Verify(msg, sig))
}

func TestEd25519FromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, true, a.PublicKey().Equals(b.PublicKey()))

	addr := Address(a.PublicKey())
	assert.Nil(t, addr.Validate())
	assert.Equal(t, addr, a.PublicKey().Condition().Address())
}
