package weave

import (
	"testing"

	cmn "github.com/tendermint/tendermint/libs/common"

	"github.com/korzewski/weave/errors"
	"github.com/korzewski/weave/weavetest/assert"
)

type DemoMsg struct {
	Num  int
	Text string
}

func (DemoMsg) Path() string    { return "demo/msg" }
func (DemoMsg) Validate() error { return nil }

var _ Msg = (*DemoMsg)(nil)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		Tx      Tx
		Dest    interface{}
		WantMsg Msg
		WantErr *errors.Error
	}{
		"success, msgmock type message": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 4219}},
			Dest:    &MsgMock{},
			WantMsg: &MsgMock{ID: 4219},
		},
		"success, demomsg type message": {
			Tx:      &TxMock{Msg: &DemoMsg{Num: 102, Text: "foobar"}},
			Dest:    &DemoMsg{},
			WantMsg: &DemoMsg{Num: 102, Text: "foobar"},
		},
		"transaction contains a nil message": {
			Tx:      &TxMock{Msg: nil},
			WantErr: errors.ErrMsg,
		},
		"transaction cannot produce a message": {
			Tx:      &TxMock{Err: errors.ErrInput},
			WantErr: errors.ErrInput,
		},
		"invalid destination message, not a pointer": {
			Tx:      &TxMock{Msg: &DemoMsg{Num: 81421, Text: "foo"}},
			Dest:    MsgMock{},
			WantErr: errors.ErrType,
		},
		"invalid destination message, wrong message type": {
			Tx:      &TxMock{Msg: &DemoMsg{Num: 94151, Text: "foo"}},
			Dest:    &MsgMock{},
			WantErr: errors.ErrType,
		},
		"invalid destination message type, random value": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 2914}},
			Dest:    "foobar",
			WantErr: errors.ErrType,
		},
		"invalid message in transaction, failed validation": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 5, Err: errors.ErrAmount}},
			Dest:    &MsgMock{},
			WantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.Tx, tc.Dest); !tc.WantErr.Is(err) {
				t.Fatalf("want %q error, got %q", tc.WantErr, err)
			}
			if tc.WantErr == nil {
				assert.Equal(t, tc.WantMsg, tc.Dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "demo/msg", GetPath(&TxMock{Msg: &DemoMsg{}}))
	assert.Equal(t, "(missing)", GetPath(&TxMock{}))
}

type TxMock struct {
	Msg Msg
	Err error
}

func (tx *TxMock) GetMsg() (Msg, error) {
	return tx.Msg, tx.Err
}

type MsgMock struct {
	// ID is used only to compare instances if the content is the same.
	ID  int64
	Err error
}

func (*MsgMock) Path() string { return "mock/msg" }

func (mock *MsgMock) Validate() error {
	return mock.Err
}

type testEvent struct {
	id string
}

func (testEvent) Kind() string { return "test_event" }

func (e testEvent) Attributes() []cmn.KVPair {
	return []cmn.KVPair{{Key: []byte("id"), Value: []byte(e.id)}}
}
