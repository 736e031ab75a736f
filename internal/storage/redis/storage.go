package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"batepapo/internal/model"
	"batepapo/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Participant operations

func (s *Storage) CreateParticipant(ctx context.Context, p *model.Participant) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	// SETNX makes the uniqueness check and the insert one atomic unit
	created, err := s.client.SetNX(ctx, participantKey(p.Name), data, 0).Result()
	if err != nil {
		return err
	}
	if !created {
		return model.ErrNameTaken
	}

	if err := s.client.SAdd(ctx, participantsIndexKey(), participantKey(p.Name)).Err(); err != nil {
		// Free the name again; an unindexed participant would block it
		// forever without ever being listed or swept
		s.client.Del(ctx, participantKey(p.Name))
		return err
	}

	return nil
}

func (s *Storage) GetParticipant(ctx context.Context, name string) (*model.Participant, error) {
	data, err := s.client.Get(ctx, participantKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrParticipantNotFound
		}
		return nil, err
	}

	var p model.Participant
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) ListParticipants(ctx context.Context) ([]*model.Participant, error) {
	keys, err := s.client.SMembers(ctx, participantsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Participant{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	participants := make([]*model.Participant, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Removed between SMEMBERS and MGET
		}
		var p model.Participant
		if err := json.Unmarshal([]byte(val.(string)), &p); err != nil {
			continue // Skip invalid data
		}
		participants = append(participants, &p)
	}

	return participants, nil
}

func (s *Storage) UpdateHeartbeat(ctx context.Context, name string, at time.Time) error {
	key := participantKey(name)

	// Read-modify-write inside a WATCH so a concurrent removal is not
	// resurrected by the heartbeat
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrParticipantNotFound
			}
			return err
		}

		var p model.Participant
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		p.LastHeartbeat = at

		updated, err := json.Marshal(&p)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)
}

func (s *Storage) DeleteParticipant(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, participantKey(name))
	pipe.SRem(ctx, participantsIndexKey(), participantKey(name))
	_, err := pipe.Exec(ctx)
	return err
}

// Message operations

func (s *Storage) AppendMessage(ctx context.Context, m *model.Message) error {
	seq, err := s.client.Incr(ctx, messageSeqKey()).Result()
	if err != nil {
		return err
	}
	m.Seq = seq

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, messageKey(m.ID), data, 0)
	pipe.ZAdd(ctx, messagesIndexKey(), redis.Z{
		Score:  float64(seq),
		Member: messageKey(m.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMessage(ctx context.Context, id model.MessageID) (*model.Message, error) {
	data, err := s.client.Get(ctx, messageKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMessageNotFound
		}
		return nil, err
	}

	var m model.Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) ListMessages(ctx context.Context) ([]*model.Message, error) {
	keys, err := s.client.ZRange(ctx, messagesIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Message{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	messages := make([]*model.Message, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Deleted between ZRANGE and MGET
		}
		var m model.Message
		if err := json.Unmarshal([]byte(val.(string)), &m); err != nil {
			continue // Skip invalid data
		}
		messages = append(messages, &m)
	}

	return messages, nil
}

func (s *Storage) UpdateMessage(ctx context.Context, m *model.Message) error {
	key := messageKey(m.ID)

	// WATCH makes the existence check and the write one unit; an update
	// racing a delete of the same id observes not-found
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrMessageNotFound
			}
			return err
		}

		var stored model.Message
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		stored.To = m.To
		stored.Text = m.Text
		stored.Type = m.Type

		updated, err := json.Marshal(&stored)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}, key)
}

func (s *Storage) DeleteMessage(ctx context.Context, id model.MessageID) error {
	removed, err := s.client.Del(ctx, messageKey(id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return model.ErrMessageNotFound
	}

	return s.client.ZRem(ctx, messagesIndexKey(), messageKey(id)).Err()
}
