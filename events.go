package weave

import (
	cmn "github.com/tendermint/tendermint/libs/common"
)

// Event is a structured record describing a state transition. Events are
// append-only: extensions write them, nothing in the state machine reads
// them back.
type Event interface {
	// Kind is the name of the event, for example "kitty_bought".
	Kind() string
	// Attributes returns the event payload as indexable key value pairs.
	Attributes() []cmn.KVPair
}

// EventSink receives events emitted during a single operation.
type EventSink interface {
	Emit(Event)
}

// EventLog is an EventSink that keeps all events in memory, in the order
// they were emitted. Use one instance per transaction.
type EventLog struct {
	events []Event
}

var _ EventSink = (*EventLog)(nil)

// Emit appends the event to the log.
func (l *EventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

// Events returns all emitted events.
func (l *EventLog) Events() []Event {
	return l.events
}

// EventTags flattens events into tags, as indexed by tendermint. Each
// attribute key is prefixed with the event kind.
func EventTags(events []Event) []cmn.KVPair {
	var tags []cmn.KVPair
	for _, e := range events {
		tags = append(tags, cmn.KVPair{Key: []byte("event"), Value: []byte(e.Kind())})
		for _, attr := range e.Attributes() {
			key := append([]byte(e.Kind()+"."), attr.Key...)
			tags = append(tags, cmn.KVPair{Key: key, Value: attr.Value})
		}
	}
	return tags
}
