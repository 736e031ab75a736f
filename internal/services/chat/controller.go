package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"batepapo/internal/dependencies/clock"
	"batepapo/internal/model"
	"batepapo/internal/storage"
)

// TimeLabelLayout is the format of the human-readable time label captured
// when a message is created.
const TimeLabelLayout = "15:04:05"

// Room notice texts recorded when a participant joins or leaves
const (
	JoinNoticeText  = "entra na sala..."
	LeaveNoticeText = "sai da sala..."
)

// Controller owns the message log: appends, authorized edits and deletes,
// and per-requester visibility.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
}

// NewController creates a new chat Controller
func NewController(storage storage.Storage, clk clock.Clock) *Controller {
	return &Controller{
		storage: storage,
		clock:   clk,
	}
}

// Send appends a message from an active participant.
// Returns model.ErrInvalidMessage for blank to/text or a non-sendable type,
// and model.ErrUnknownSender when from is not an active participant.
func (c *Controller) Send(ctx context.Context, from, to, text string, msgType model.MessageType) (*model.Message, error) {
	if err := validateFields(to, text, msgType); err != nil {
		return nil, err
	}

	if _, err := c.storage.GetParticipant(ctx, from); err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return nil, model.ErrUnknownSender
		}
		return nil, err
	}

	msg := &model.Message{
		ID:   model.MessageID(uuid.NewString()),
		From: from,
		To:   to,
		Text: text,
		Type: msgType,
		Time: c.clock.Now().Format(TimeLabelLayout),
	}

	if err := c.storage.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// AppendSystem records a status notice on behalf of a participant that may
// no longer (or not yet) be active. It bypasses the sender check: the join
// notice is written before the caller observes the new participant, and the
// leave notice after the sweeper removed them.
func (c *Controller) AppendSystem(ctx context.Context, from, text string) (*model.Message, error) {
	msg := &model.Message{
		ID:   model.MessageID(uuid.NewString()),
		From: from,
		To:   model.Broadcast,
		Text: text,
		Type: model.MessageTypeStatus,
		Time: c.clock.Now().Format(TimeLabelLayout),
	}

	if err := c.storage.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// List returns all messages in creation order
func (c *Controller) List(ctx context.Context) ([]*model.Message, error) {
	return c.storage.ListMessages(ctx)
}

// ListVisible returns the messages requester may read, in creation order.
// A positive limit keeps only the last limit visible messages.
func (c *Controller) ListVisible(ctx context.Context, requester string, limit int) ([]*model.Message, error) {
	all, err := c.storage.ListMessages(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*model.Message, 0, len(all))
	for _, m := range all {
		if m.VisibleTo(requester) {
			visible = append(visible, m)
		}
	}

	// The limit applies to the visible set, not the raw log
	if limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}

	return visible, nil
}

// Update replaces to/text/type of a message owned by requester.
// ID, From, Seq and Time are never touched.
func (c *Controller) Update(ctx context.Context, id model.MessageID, requester, to, text string, msgType model.MessageType) error {
	if err := validateFields(to, text, msgType); err != nil {
		return err
	}

	msg, err := c.storage.GetMessage(ctx, id)
	if err != nil {
		return err
	}
	if msg.From != requester {
		return model.ErrNotOwner
	}

	msg.To = to
	msg.Text = text
	msg.Type = msgType

	return c.storage.UpdateMessage(ctx, msg)
}

// Delete permanently removes a message owned by requester
func (c *Controller) Delete(ctx context.Context, id model.MessageID, requester string) error {
	msg, err := c.storage.GetMessage(ctx, id)
	if err != nil {
		return err
	}
	if msg.From != requester {
		return model.ErrNotOwner
	}

	return c.storage.DeleteMessage(ctx, id)
}

func validateFields(to, text string, msgType model.MessageType) error {
	if strings.TrimSpace(to) == "" || strings.TrimSpace(text) == "" {
		return model.ErrInvalidMessage
	}
	if !model.ValidSendType(msgType) {
		return model.ErrInvalidMessage
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	Send(ctx context.Context, from, to, text string, msgType model.MessageType) (*model.Message, error)
	AppendSystem(ctx context.Context, from, text string) (*model.Message, error)
	List(ctx context.Context) ([]*model.Message, error)
	ListVisible(ctx context.Context, requester string, limit int) ([]*model.Message, error)
	Update(ctx context.Context, id model.MessageID, requester, to, text string, msgType model.MessageType) error
	Delete(ctx context.Context, id model.MessageID, requester string) error
}

var _ ControllerInterface = (*Controller)(nil)
