package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const adminOnlyText = "Apenas administradores podem fazer isso."

// canDelete удаление и выгрузку разрешаем админу из конфига и пользователям с ролью admin.
func (b *Bot) canDelete(ctx context.Context, from *tgbotapi.User) bool {
	if from == nil {
		return false
	}
	if b.adminChat != 0 && from.ID == b.adminChat {
		return true
	}
	if b.users == nil {
		return false
	}
	u, err := b.users.GetByTelegramID(ctx, from.ID)
	if err != nil {
		b.log.Error("user lookup failed", "tg_id", from.ID, "err", err)
		return false
	}
	return u.CanDelete()
}

// denyUnlessAdmin отвечает на нажатие алертом, если прав нет.
func (b *Bot) denyUnlessAdmin(ctx context.Context, cb *tgbotapi.CallbackQuery) bool {
	if b.canDelete(ctx, cb.From) {
		return false
	}
	b.answerCallback(cb, adminOnlyText, true)
	return true
}
