package memory

import (
	"sync"

	"github.com/Na1awut/NDLP/internal/domain"
)

type MessageStore struct {
	mu       sync.RWMutex
	messages map[domain.UserID][]*domain.ChatMessage
}

func NewMessageStore() *MessageStore {
	return &MessageStore{
		messages: make(map[domain.UserID][]*domain.ChatMessage),
	}
}

func (s *MessageStore) AppendMessage(msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(s.messages[msg.UserID], msg)
	if len(msgs) > domain.MaxStoredMessages {
		msgs = msgs[len(msgs)-domain.MaxStoredMessages:]
	}
	s.messages[msg.UserID] = msgs
	return nil
}

func (s *MessageStore) GetRecentMessages(userID domain.UserID, limit int) ([]*domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[userID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]*domain.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}
