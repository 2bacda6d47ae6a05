package application

import (
	"context"
	"sync"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// MemoryTrackedMessages keeps the chat -> message mapping in process memory.
// The mapping is lost on restart.
type MemoryTrackedMessages struct {
	mu sync.RWMutex
	m  map[int64]domain.TrackedMessage
}

func NewMemoryTrackedMessages() *MemoryTrackedMessages {
	return &MemoryTrackedMessages{m: make(map[int64]domain.TrackedMessage)}
}

func (s *MemoryTrackedMessages) Get(_ context.Context, chatID int64) (domain.TrackedMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tm, ok := s.m[chatID]
	if !ok {
		return domain.TrackedMessage{}, domain.ErrNotFound
	}
	return tm, nil
}

func (s *MemoryTrackedMessages) Upsert(_ context.Context, tm domain.TrackedMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[tm.ChatID] = tm
	return nil
}
