package presence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"batepapo/internal/dependencies/mocks"
	"batepapo/internal/model"
	"batepapo/internal/services/chat"
	"batepapo/internal/services/registry"
	"batepapo/internal/storage"
	"batepapo/internal/storage/memory"
	"batepapo/internal/testutil"
)

type SweeperSuite struct {
	suite.Suite
	storage  *memory.Storage
	registry *registry.Controller
	chat     *chat.Controller
	clock    *mocks.MockClock
	sweeper  *Sweeper
	ctx      context.Context
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperSuite))
}

func (s *SweeperSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.chat = chat.NewController(s.storage, s.clock)
	s.registry = registry.NewController(s.storage, s.chat, s.clock, testutil.NopLogger())
	s.sweeper = NewSweeper(s.registry, s.chat, s.clock, testutil.NopLogger(), DefaultInterval, DefaultStaleThreshold)
	s.ctx = context.Background()
}

func (s *SweeperSuite) join(name string) {
	_, err := s.registry.Join(s.ctx, name)
	s.Require().NoError(err)
}

func (s *SweeperSuite) participantNames() []string {
	participants, err := s.registry.List(s.ctx)
	s.Require().NoError(err)
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, p.Name)
	}
	return names
}

func (s *SweeperSuite) TestSweepExpiresStaleParticipant() {
	s.join("ana")

	s.clock.Advance(11 * time.Second)
	s.sweeper.SweepOnce(s.ctx)

	s.Empty(s.participantNames())
}

func (s *SweeperSuite) TestSweepRecordsLeaveNotice() {
	s.join("ana")

	s.clock.Advance(11 * time.Second)
	s.sweeper.SweepOnce(s.ctx)

	messages, err := s.chat.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 2)

	leave := messages[1]
	s.Equal("ana", leave.From)
	s.Equal(model.Broadcast, leave.To)
	s.Equal(chat.LeaveNoticeText, leave.Text)
	s.Equal(model.MessageTypeStatus, leave.Type)
	s.Equal("12:00:11", leave.Time)
}

func (s *SweeperSuite) TestSweepKeepsFreshParticipant() {
	s.join("ana")

	s.clock.Advance(9 * time.Second)
	s.sweeper.SweepOnce(s.ctx)

	s.Equal([]string{"ana"}, s.participantNames())
}

func (s *SweeperSuite) TestSweepAtExactThresholdKeepsParticipant() {
	s.join("ana")

	s.clock.Advance(DefaultStaleThreshold)
	s.sweeper.SweepOnce(s.ctx)

	s.Equal([]string{"ana"}, s.participantNames())
}

func (s *SweeperSuite) TestHeartbeatDefersExpiry() {
	s.join("ana")

	s.clock.Advance(8 * time.Second)
	s.Require().NoError(s.registry.Heartbeat(s.ctx, "ana"))

	s.clock.Advance(8 * time.Second)
	s.sweeper.SweepOnce(s.ctx)

	s.Equal([]string{"ana"}, s.participantNames())
}

func (s *SweeperSuite) TestSweepExpiresOnlyStaleParticipants() {
	s.join("ana")
	s.clock.Advance(11 * time.Second)
	s.join("bob")

	s.sweeper.SweepOnce(s.ctx)

	s.Equal([]string{"bob"}, s.participantNames())
}

func (s *SweeperSuite) TestSweepEmptyRoom() {
	s.sweeper.SweepOnce(s.ctx)

	messages, err := s.chat.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(messages)
}

func (s *SweeperSuite) TestSweepContinuesPastFailures() {
	s.join("ana")
	s.join("bob")
	s.clock.Advance(11 * time.Second)

	failing := &failingStorage{Storage: s.storage, failDeleteName: "ana"}
	reg := registry.NewController(failing, chat.NewController(failing, s.clock), s.clock, testutil.NopLogger())
	sweeper := NewSweeper(reg, chat.NewController(failing, s.clock), s.clock, testutil.NopLogger(), 0, 0)

	sweeper.SweepOnce(s.ctx)

	// ana's removal failed but bob was still expired
	names := s.participantNames()
	s.Equal([]string{"ana"}, names)
}

func (s *SweeperSuite) TestDefaultsAppliedForNonPositiveConfig() {
	sweeper := NewSweeper(s.registry, s.chat, s.clock, testutil.NopLogger(), 0, -1)
	s.Equal(DefaultInterval, sweeper.interval)
	s.Equal(DefaultStaleThreshold, sweeper.threshold)
}

func (s *SweeperSuite) TestRunStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(s.ctx)

	done := make(chan error, 1)
	go func() {
		done <- s.sweeper.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.Fail("sweeper did not stop after cancellation")
	}
}

// failingStorage wraps a real storage and fails removal of one participant
type failingStorage struct {
	storage.Storage
	failDeleteName string
}

func (f *failingStorage) DeleteParticipant(ctx context.Context, name string) error {
	if name == f.failDeleteName {
		return errors.New("storage unavailable")
	}
	return f.Storage.DeleteParticipant(ctx, name)
}
