package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Na1awut/NDLP/internal/domain"
)

const (
	stateKeyPrefix    = "carebot:state:"
	messagesKeyPrefix = "carebot:messages:"
)

// Store keeps emotional state and message history in Redis. States are JSON
// blobs under one key per user; messages are a list trimmed to the history
// cap.
type Store struct {
	rdb *redis.Client
}

func NewStore(addr, password string, db int) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{rdb: rdb}, nil
}

// NewStoreFromClient wraps an existing client; used by tests.
func NewStoreFromClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func stateKey(userID domain.UserID) string {
	return stateKeyPrefix + string(userID)
}

func messagesKey(userID domain.UserID) string {
	return messagesKeyPrefix + string(userID)
}

// ─────────────────────────────────────────
// StateStore implementation
// ─────────────────────────────────────────

func (s *Store) GetState(userID domain.UserID) (*domain.State, error) {
	ctx := context.Background()

	raw, err := s.rdb.Get(ctx, stateKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis GetState: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("redis GetState decode: %w", err)
	}
	return &state, nil
}

func (s *Store) SaveState(userID domain.UserID, state *domain.State) error {
	ctx := context.Background()

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("redis SaveState encode: %w", err)
	}
	if err := s.rdb.Set(ctx, stateKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis SaveState: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────
// MessageStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendMessage(msg *domain.ChatMessage) error {
	ctx := context.Background()

	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("redis AppendMessage encode: %w", err)
	}

	key := messagesKey(msg.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, key, raw)
	pipe.LTrim(ctx, key, -int64(domain.MaxStoredMessages), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) GetRecentMessages(userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	ctx := context.Background()

	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}

	raws, err := s.rdb.LRange(ctx, messagesKey(userID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis GetRecentMessages: %w", err)
	}

	out := make([]*domain.ChatMessage, 0, len(raws))
	for _, raw := range raws {
		var msg domain.ChatMessage
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("redis GetRecentMessages decode: %w", err)
		}
		out = append(out, &msg)
	}
	return out, nil
}
