package storage

import (
	"context"
	"time"

	"batepapo/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Participant operations

	// CreateParticipant inserts a participant if no active participant with
	// the same name exists. The check and the insert are a single atomic
	// unit; a losing racer gets model.ErrNameTaken.
	CreateParticipant(ctx context.Context, p *model.Participant) error
	GetParticipant(ctx context.Context, name string) (*model.Participant, error)
	ListParticipants(ctx context.Context) ([]*model.Participant, error)
	UpdateHeartbeat(ctx context.Context, name string, at time.Time) error
	DeleteParticipant(ctx context.Context, name string) error

	// Message operations

	// AppendMessage stores the message and assigns it the next sequence
	// number. Sequence numbers are distinct and monotonically increasing.
	AppendMessage(ctx context.Context, m *model.Message) error
	GetMessage(ctx context.Context, id model.MessageID) (*model.Message, error)
	// ListMessages returns all messages in sequence (creation) order.
	ListMessages(ctx context.Context) ([]*model.Message, error)
	// UpdateMessage replaces the stored record for m.ID. Updating a message
	// that was deleted concurrently returns model.ErrMessageNotFound.
	UpdateMessage(ctx context.Context, m *model.Message) error
	DeleteMessage(ctx context.Context, id model.MessageID) error
}
