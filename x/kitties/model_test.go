package kitties

import (
	"math"
	"testing"

	"github.com/korzewski/weave/coin"
	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/weavetest/assert"
)

func TestCountersNextKittyID(t *testing.T) {
	var c Counters
	var prev KittyID
	for i := 0; i < 5; i++ {
		id, err := c.NextKittyID()
		assert.Nil(t, err)
		if !prev.Less(id) {
			t.Fatalf("id %s not greater than %s", id, prev)
		}
		prev = id
	}
	assert.Equal(t, NewKittyID(5), c.LastID)

	c.LastID = MaxKittyID
	_, err := c.NextKittyID()
	assert.IsErr(t, ErrIDSpaceExhausted, err)
	assert.Equal(t, MaxKittyID, c.LastID)
}

func TestCountersDrawSeed(t *testing.T) {
	c := Counters{Nonce: 0x01020304}
	assert.Equal(t, []byte{4, 3, 2, 1}, c.DrawSeed())
	assert.Equal(t, uint32(0x01020305), c.Nonce)

	c.Nonce = math.MaxUint32
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, c.DrawSeed())
	assert.Equal(t, uint32(0), c.Nonce)
	assert.Equal(t, []byte{0, 0, 0, 0}, c.DrawSeed())
	assert.Equal(t, uint32(1), c.Nonce)
}

func TestListingValidate(t *testing.T) {
	cases := map[string]struct {
		listing Listing
		wantErr *errors.Error
	}{
		"valid":          {Listing{KittyID: NewKittyID(1), Price: coin.NewCoin(5, 0, "KIT")}, nil},
		"zero price":     {Listing{KittyID: NewKittyID(1), Price: coin.NewCoin(0, 0, "KIT")}, nil},
		"negative price": {Listing{KittyID: NewKittyID(1), Price: coin.NewCoin(-5, 0, "KIT")}, errors.ErrAmount},
		"no ticker":      {Listing{KittyID: NewKittyID(1), Price: coin.NewCoin(5, 0, "")}, errors.ErrCurrency},
		"no kitty":       {Listing{Price: coin.NewCoin(5, 0, "KIT")}, errors.ErrEmpty},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.listing.Validate()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
