package weave_test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korzewski/weave"
	"github.com/korzewski/weave/errors"
)

func TestAddressPrinting(t *testing.T) {
	Convey("addresses print as bech32", t, func() {
		addr := weave.NewCondition("sigs", "ed25519", []byte("key")).Address()

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(strings.HasPrefix(addr.String(), weave.AddressPrefix+"1"), ShouldBeTrue)
	})

	Convey("conditions print the data as hex", t, func() {
		cond := weave.NewCondition("sigs", "ed25519", []byte{0xAB, 0xCD})

		So(cond.String(), ShouldEqual, "sigs/ed25519/ABCD")
	})

	Convey("an empty address has a placeholder", t, func() {
		So(weave.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestAddressValidate(t *testing.T) {
	cases := map[string]struct {
		addr    weave.Address
		wantErr *errors.Error
	}{
		"valid": {
			addr: weave.NewAddress([]byte("anything")),
		},
		"empty": {
			addr:    nil,
			wantErr: errors.ErrEmpty,
		},
		"too short": {
			addr:    weave.Address("short"),
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.addr.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := weave.NewCondition("sigs", "ed25519", []byte("key")).Address()
	bech, err := json.Marshal(addr)
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr weave.Address
	}{
		"bech32 decoding": {
			json:     string(bech),
			wantAddr: addr,
		},
		"hex decoding": {
			json:     fmt.Sprintf(`"%X"`, []byte(addr)),
			wantAddr: addr,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"wrong length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"broken checksum": {
			json:    `"` + string(bech[1:len(bech)-2]) + `q"`,
			wantErr: errors.ErrInput,
		},
		"not hex": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a weave.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionParse(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte("data"))
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, []byte("data"), data)
	assert.NoError(t, cond.Validate())

	bad := weave.Condition("no-slashes")
	_, _, _, err = bad.Parse()
	assert.True(t, errors.ErrInput.Is(err))
	assert.True(t, errors.ErrInput.Is(bad.Validate()))
}
