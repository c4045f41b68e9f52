package dialog

import (
	"context"
	"encoding/json"
	"math"
	"sync"
)

// Store где живёт шаг диалога каждого чата.
type Store interface {
	Get(ctx context.Context, chatID int64) (*Item, error)
	Set(ctx context.Context, chatID int64, state State, payload Payload) error
	Reset(ctx context.Context, chatID int64) error
}

// MemStore хранилище в памяти, когда Postgres не настроен.
type MemStore struct {
	mu    sync.Mutex
	items map[int64]Item
}

func NewMemStore() *MemStore { return &MemStore{items: map[int64]Item{}} }

func (s *MemStore) Get(_ context.Context, chatID int64) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[chatID]
	if !ok {
		return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
	}
	return &Item{ChatID: chatID, State: it.State, Payload: clonePayload(it.Payload)}, nil
}

func (s *MemStore) Set(_ context.Context, chatID int64, state State, payload Payload) error {
	// как и в Postgres, payload проходит через JSON: числа становятся float64
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[chatID] = Item{ChatID: chatID, State: state, Payload: p}
	return nil
}

func (s *MemStore) Reset(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, chatID)
	return nil
}

func clonePayload(p Payload) Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// GetString Helper для безопасного чтения строк из payload
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt64 после JSON числа приходят как float64.
func GetInt64(p Payload, key string) (int64, bool) {
	switch v := p[key].(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
