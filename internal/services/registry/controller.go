package registry

import (
	"context"
	"log/slog"
	"strings"

	"batepapo/internal/dependencies/clock"
	"batepapo/internal/model"
	"batepapo/internal/services/chat"
	"batepapo/internal/storage"
)

// Controller owns participant identity and liveness state
type Controller struct {
	storage storage.Storage
	chat    *chat.Controller
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new registry Controller
func NewController(storage storage.Storage, chatController *chat.Controller, clk clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		chat:    chatController,
		clock:   clk,
		logger:  logger,
	}
}

// Join registers a participant under a unique display name and records the
// room's join notice. From the caller's point of view the two effects are
// one unit: if the notice cannot be recorded, the participant is removed
// again and the join reported failed.
func (c *Controller) Join(ctx context.Context, name string) (*model.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidName
	}

	p := &model.Participant{
		Name:          name,
		LastHeartbeat: c.clock.Now(),
	}

	if err := c.storage.CreateParticipant(ctx, p); err != nil {
		return nil, err
	}

	if _, err := c.chat.AppendSystem(ctx, name, chat.JoinNoticeText); err != nil {
		c.logger.Error("rolling back join, could not record join notice",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		if delErr := c.storage.DeleteParticipant(ctx, name); delErr != nil {
			c.logger.Error("rollback failed, participant left without join notice",
				slog.String("name", name),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}

	c.logger.Info("participant joined", slog.String("name", name))
	return p, nil
}

// List returns all currently active participants. Order carries no meaning.
func (c *Controller) List(ctx context.Context) ([]*model.Participant, error) {
	return c.storage.ListParticipants(ctx)
}

// Heartbeat refreshes a participant's last-seen instant
func (c *Controller) Heartbeat(ctx context.Context, name string) error {
	return c.storage.UpdateHeartbeat(ctx, name, c.clock.Now())
}

// Remove deletes a participant by name. The name is the canonical removal
// key; removing an absent name is not an error.
func (c *Controller) Remove(ctx context.Context, name string) error {
	return c.storage.DeleteParticipant(ctx, name)
}

// Interface for dependency injection
type ControllerInterface interface {
	Join(ctx context.Context, name string) (*model.Participant, error)
	List(ctx context.Context) ([]*model.Participant, error)
	Heartbeat(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error
}

var _ ControllerInterface = (*Controller)(nil)
