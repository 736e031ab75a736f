package model

// MessageID uniquely identifies a message for its whole lifetime
type MessageID string

// MessageType enumerates the kinds of messages in the room
type MessageType string

const (
	// MessageTypePublic is a message addressed to the whole room
	MessageTypePublic MessageType = "message"
	// MessageTypePrivate is a message directed at a single participant
	MessageTypePrivate MessageType = "private_message"
	// MessageTypeStatus is a system-generated join/leave notice
	MessageTypeStatus MessageType = "status"
)

// Broadcast is the reserved recipient meaning "all participants"
const Broadcast = "todos"

// Message is one entry in the room's message log.
// ID, From, Seq and Time are fixed at creation; To, Text and Type may be
// edited by the author.
type Message struct {
	ID   MessageID   `json:"id"`
	Seq  int64       `json:"seq"`
	From string      `json:"from"`
	To   string      `json:"to"`
	Text string      `json:"text"`
	Type MessageType `json:"type"`
	Time string      `json:"time"`
}

// ValidSendType reports whether t is a type a participant may send directly.
// Status messages are system-generated only.
func ValidSendType(t MessageType) bool {
	return t == MessageTypePublic || t == MessageTypePrivate
}

// VisibleTo reports whether the message may be read by requester.
// Public and status messages are broadcast-visible; private messages are
// visible to their author and their recipient.
func (m *Message) VisibleTo(requester string) bool {
	if m.Type == MessageTypePublic || m.Type == MessageTypeStatus {
		return true
	}
	return m.From == requester || m.To == requester
}
