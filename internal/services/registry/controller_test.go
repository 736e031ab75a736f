package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"batepapo/internal/dependencies/mocks"
	"batepapo/internal/model"
	"batepapo/internal/services/chat"
	"batepapo/internal/storage"
	"batepapo/internal/storage/memory"
	"batepapo/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	chat       *chat.Controller
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.chat = chat.NewController(s.storage, s.clock)
	s.controller = NewController(s.storage, s.chat, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// Join tests

func (s *ControllerSuite) TestJoinSucceeds() {
	p, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)

	s.Equal("ana", p.Name)
	s.True(p.LastHeartbeat.Equal(s.clock.Now()))

	retrieved, err := s.storage.GetParticipant(s.ctx, "ana")
	s.Require().NoError(err)
	s.Equal("ana", retrieved.Name)
}

func (s *ControllerSuite) TestJoinRecordsNotice() {
	_, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 1)

	notice := messages[0]
	s.Equal("ana", notice.From)
	s.Equal(model.Broadcast, notice.To)
	s.Equal(chat.JoinNoticeText, notice.Text)
	s.Equal(model.MessageTypeStatus, notice.Type)
	s.Equal("12:00:00", notice.Time)
}

func (s *ControllerSuite) TestJoinBlankName() {
	_, err := s.controller.Join(s.ctx, "   ")
	s.ErrorIs(err, model.ErrInvalidName)
}

func (s *ControllerSuite) TestJoinTrimsName() {
	p, err := s.controller.Join(s.ctx, "  ana  ")
	s.Require().NoError(err)
	s.Equal("ana", p.Name)
}

func (s *ControllerSuite) TestJoinDuplicateName() {
	_, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)

	_, err = s.controller.Join(s.ctx, "ana")
	s.ErrorIs(err, model.ErrNameTaken)

	// Only the first join recorded a notice
	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Len(messages, 1)
}

func (s *ControllerSuite) TestJoinRollsBackWhenNoticeFails() {
	failing := &failingStorage{Storage: s.storage, failAppend: true}
	controller := NewController(failing, chat.NewController(failing, s.clock), s.clock, testutil.NopLogger())

	_, err := controller.Join(s.ctx, "ana")
	s.Require().Error(err)

	_, err = s.storage.GetParticipant(s.ctx, "ana")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *ControllerSuite) TestConcurrentJoinSameName() {
	const attempts = 64

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.controller.Join(s.ctx, "ana")
		}(i)
	}
	wg.Wait()

	// Exactly one racer claims the name
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.ErrorIs(err, model.ErrNameTaken)
		}
	}
	s.Equal(1, succeeded)

	participants, err := s.storage.ListParticipants(s.ctx)
	s.Require().NoError(err)
	s.Len(participants, 1)

	// And only that racer recorded a join notice
	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Len(messages, 1)
}

func (s *ControllerSuite) TestRejoinAfterRemoval() {
	_, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)
	s.Require().NoError(s.controller.Remove(s.ctx, "ana"))

	_, err = s.controller.Join(s.ctx, "ana")
	s.NoError(err)
}

// List tests

func (s *ControllerSuite) TestListParticipants() {
	_, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)
	_, err = s.controller.Join(s.ctx, "bob")
	s.Require().NoError(err)

	participants, err := s.controller.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(participants, 2)

	names := []string{participants[0].Name, participants[1].Name}
	s.ElementsMatch([]string{"ana", "bob"}, names)
}

func (s *ControllerSuite) TestListEmptyRoom() {
	participants, err := s.controller.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(participants)
}

// Heartbeat tests

func (s *ControllerSuite) TestHeartbeatRefreshesLastSeen() {
	_, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)

	s.clock.Advance(5 * time.Second)
	s.Require().NoError(s.controller.Heartbeat(s.ctx, "ana"))

	retrieved, err := s.storage.GetParticipant(s.ctx, "ana")
	s.Require().NoError(err)
	s.True(retrieved.LastHeartbeat.Equal(s.clock.Now()))
}

func (s *ControllerSuite) TestHeartbeatUnknownParticipant() {
	err := s.controller.Heartbeat(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *ControllerSuite) TestHeartbeatDoesNotRecordMessages() {
	_, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)
	s.Require().NoError(s.controller.Heartbeat(s.ctx, "ana"))

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Len(messages, 1) // The join notice only
}

// Remove tests

func (s *ControllerSuite) TestRemoveParticipant() {
	_, err := s.controller.Join(s.ctx, "ana")
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Remove(s.ctx, "ana"))

	_, err = s.storage.GetParticipant(s.ctx, "ana")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *ControllerSuite) TestRemoveAbsentIsNoop() {
	s.NoError(s.controller.Remove(s.ctx, "nobody"))
}

// failingStorage wraps a real storage and fails selected operations
type failingStorage struct {
	storage.Storage
	failAppend bool
}

func (f *failingStorage) AppendMessage(ctx context.Context, m *model.Message) error {
	if f.failAppend {
		return errors.New("storage unavailable")
	}
	return f.Storage.AppendMessage(ctx, m)
}
