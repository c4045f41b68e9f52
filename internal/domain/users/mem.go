package users

import (
	"context"
	"sync"
	"time"
)

// MemRepo Store в памяти для запуска без Postgres.
type MemRepo struct {
	mu     sync.Mutex
	nextID int64
	byTG   map[int64]User
}

func NewMemRepo() *MemRepo { return &MemRepo{byTG: map[int64]User{}} }

func (r *MemRepo) GetByTelegramID(_ context.Context, tgID int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byTG[tgID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemRepo) UpsertFromTelegram(_ context.Context, tg Telegram, role Role) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	u, ok := r.byTG[tg.ID]
	if !ok {
		r.nextID++
		u = User{ID: r.nextID, TelegramID: tg.ID, Role: role, CreatedAt: now}
	} else if u.Role != RoleAdmin {
		u.Role = role
	}
	u.Username, u.FirstName, u.LastName = tg.Username, tg.FirstName, tg.LastName
	u.UpdatedAt = now
	r.byTG[tg.ID] = u
	return &u, nil
}
