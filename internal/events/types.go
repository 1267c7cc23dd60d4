package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventDataChanged EventType = "data_changed"
	EventPing        EventType = "ping"
	EventPong        EventType = "pong"
)

// Event represents a data change notification. UserID scopes the change
// to one account's view (assignments, notifications); 0 means the change
// is visible to everyone.
type Event struct {
	Type       EventType
	UserID     int
	Timestamp  time.Time
	SequenceID int64 // Monotonically increasing sequence number for ordering
}

// SubscribeMessage is sent by clients to scope which updates they receive
type SubscribeMessage struct {
	UserID int // 0 = all users, >0 = one account
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Type      string            // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
}
