package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"batepapo/internal/model"
	"batepapo/internal/services/chat"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete room lifecycle from join to expiry
func (s *IntegrationSuite) TestRoomLifecycle() {
	// Step 1: ana and bob join
	_, err := s.app.Registry.Join(s.ctx, "ana")
	s.Require().NoError(err)
	_, err = s.app.Registry.Join(s.ctx, "bob")
	s.Require().NoError(err)

	participants, err := s.app.Registry.List(s.ctx)
	s.Require().NoError(err)
	s.Len(participants, 2)

	// Step 2: a duplicate name is rejected
	_, err = s.app.Registry.Join(s.ctx, "ana")
	s.ErrorIs(err, model.ErrNameTaken)

	// Step 3: ana talks to the room and whispers to bob
	_, err = s.app.ChatController.Send(s.ctx, "ana", model.Broadcast, "oi", model.MessageTypePublic)
	s.Require().NoError(err)
	private, err := s.app.ChatController.Send(s.ctx, "ana", "bob", "psst", model.MessageTypePrivate)
	s.Require().NoError(err)

	// Step 4: bob sees everything, an outsider misses the private message
	forBob, err := s.app.ChatController.ListVisible(s.ctx, "bob", 0)
	s.Require().NoError(err)
	s.Len(forBob, 4)

	forCarla, err := s.app.ChatController.ListVisible(s.ctx, "carla", 0)
	s.Require().NoError(err)
	s.Len(forCarla, 3)

	// Step 5: ana edits then deletes the private message
	err = s.app.ChatController.Update(s.ctx, private.ID, "ana", "bob", "psst, editado", model.MessageTypePrivate)
	s.Require().NoError(err)
	err = s.app.ChatController.Delete(s.ctx, private.ID, "ana")
	s.Require().NoError(err)

	forBob, err = s.app.ChatController.ListVisible(s.ctx, "bob", 0)
	s.Require().NoError(err)
	s.Len(forBob, 3)

	// Step 6: bob keeps his heartbeat fresh, ana goes silent
	s.app.MockClock.Advance(8 * time.Second)
	s.Require().NoError(s.app.Registry.Heartbeat(s.ctx, "bob"))
	s.app.MockClock.Advance(8 * time.Second)

	s.app.Sweeper.SweepOnce(s.ctx)

	participants, err = s.app.Registry.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(participants, 1)
	s.Equal("bob", participants[0].Name)

	// Step 7: ana's departure was recorded
	all, err := s.app.ChatController.List(s.ctx)
	s.Require().NoError(err)
	last := all[len(all)-1]
	s.Equal("ana", last.From)
	s.Equal(chat.LeaveNoticeText, last.Text)
	s.Equal(model.MessageTypeStatus, last.Type)

	// Step 8: ana can rejoin under the freed name
	_, err = s.app.Registry.Join(s.ctx, "ana")
	s.Require().NoError(err)
}

// Test: expired participants cannot send until they rejoin
func (s *IntegrationSuite) TestExpiredParticipantMustRejoin() {
	_, err := s.app.Registry.Join(s.ctx, "ana")
	s.Require().NoError(err)

	s.app.MockClock.Advance(11 * time.Second)
	s.app.Sweeper.SweepOnce(s.ctx)

	_, err = s.app.ChatController.Send(s.ctx, "ana", model.Broadcast, "oi", model.MessageTypePublic)
	s.ErrorIs(err, model.ErrUnknownSender)

	_, err = s.app.Registry.Join(s.ctx, "ana")
	s.Require().NoError(err)
	_, err = s.app.ChatController.Send(s.ctx, "ana", model.Broadcast, "voltei", model.MessageTypePublic)
	s.NoError(err)
}
