package redis

import (
	"fmt"

	"batepapo/internal/model"
)

// Key prefix for all chat-room data
const keyPrefix = "batepapo"

// participantKey returns the Redis key for a Participant
func participantKey(name string) string {
	return fmt.Sprintf("%s:participant:%s", keyPrefix, name)
}

// participantsIndexKey returns the Redis key for the SET of participant keys
func participantsIndexKey() string {
	return fmt.Sprintf("%s:idx:participants", keyPrefix)
}

// messageKey returns the Redis key for a Message
func messageKey(id model.MessageID) string {
	return fmt.Sprintf("%s:message:%s", keyPrefix, id)
}

// messagesIndexKey returns the Redis key for the ZSET ordering message keys
// by sequence number
func messagesIndexKey() string {
	return fmt.Sprintf("%s:idx:messages", keyPrefix)
}

// messageSeqKey returns the Redis key for the message sequence counter
func messageSeqKey() string {
	return fmt.Sprintf("%s:message_seq", keyPrefix)
}
