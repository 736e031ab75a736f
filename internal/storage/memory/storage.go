package memory

import (
	"context"
	"sync"
	"time"

	"batepapo/internal/model"
	"batepapo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	participants map[string]*model.Participant
	messages     []*model.Message
	byID         map[model.MessageID]*model.Message
	nextSeq      int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		participants: make(map[string]*model.Participant),
		byID:         make(map[model.MessageID]*model.Message),
		nextSeq:      1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) CreateParticipant(ctx context.Context, p *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[p.Name]; ok {
		return model.ErrNameTaken
	}
	cp := *p
	s.participants[p.Name] = &cp
	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.participants[name]
	if !ok {
		return nil, model.ErrParticipantNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]*model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		cp := *p
		result = append(result, &cp)
	}
	return result, nil
}

func (s *Storage) UpdateHeartbeat(ctx context.Context, name string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[name]
	if !ok {
		return model.ErrParticipantNotFound
	}
	p.LastHeartbeat = at
	return nil
}

func (s *Storage) DeleteParticipant(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participants, name)
	return nil
}

// Message operations

func (s *Storage) AppendMessage(ctx context.Context, m *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Seq = s.nextSeq
	s.nextSeq++
	cp := *m
	s.messages = append(s.messages, &cp)
	s.byID[m.ID] = &cp
	return nil
}

func (s *Storage) GetMessage(ctx context.Context, id model.MessageID) (*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, model.ErrMessageNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *Storage) ListMessages(ctx context.Context) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.Message, 0, len(s.messages))
	for _, m := range s.messages {
		cp := *m
		result = append(result, &cp)
	}
	return result, nil
}

func (s *Storage) UpdateMessage(ctx context.Context, m *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[m.ID]
	if !ok {
		return model.ErrMessageNotFound
	}
	stored.To = m.To
	stored.Text = m.Text
	stored.Type = m.Type
	return nil
}

func (s *Storage) DeleteMessage(ctx context.Context, id model.MessageID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return model.ErrMessageNotFound
	}
	delete(s.byID, id)
	for i, m := range s.messages {
		if m.ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			break
		}
	}
	return nil
}
