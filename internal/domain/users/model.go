package users

import (
	"context"
	"time"
)

type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanDelete удаление записей и выгрузка доступны только админам.
func (u *User) CanDelete() bool { return u != nil && u.Role == RoleAdmin }

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Store учёт тех, кто открывал бота (/start).
type Store interface {
	GetByTelegramID(ctx context.Context, tgID int64) (*User, error)
	UpsertFromTelegram(ctx context.Context, tg Telegram, role Role) (*User, error)
}
