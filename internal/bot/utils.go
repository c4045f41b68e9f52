package bot

import (
	"context"
	"html"
	"strconv"
	"strings"

	"github.com/Spok95/production-bot/internal/dialog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

/*** HELPERS ***/

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	if _, err := b.api.Request(resp); err != nil {
		b.log.Debug("answer callback failed", "err", err)
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

// show редактирует экран editMsgID или присылает новый. Возвращает id сообщения экрана.
func (b *Bot) show(chatID int64, editMsgID *int, text string, kb tgbotapi.InlineKeyboardMarkup) int {
	if editMsgID != nil {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, *editMsgID, text, kb)
		edit.ParseMode = tgbotapi.ModeHTML
		b.send(edit)
		return *editMsgID
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeHTML
	m.ReplyMarkup = kb
	sent, err := b.api.Send(m)
	if err != nil {
		b.log.Error("send failed", "err", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

func (b *Bot) editTextWithNav(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, navKeyboard(true, true))
	edit.ParseMode = tgbotapi.ModeHTML
	b.send(edit)
}

// clearPrevStep убрать inline-кнопки у прошлого экрана, если он был
func (b *Bot) clearPrevStep(ctx context.Context, chatID int64) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st == nil {
		return
	}
	if mid, ok := dialog.GetInt64(st.Payload, dialog.KeyMessageID); ok && mid > 0 {
		rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
		b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, int(mid), rm))
	}
}

// setStep сохраняет шаг диалога вместе с id сообщения, которое он редактирует.
func (b *Bot) setStep(ctx context.Context, chatID int64, state dialog.State, msgID int, extra dialog.Payload) {
	p := dialog.Payload{dialog.KeyMessageID: msgID}
	for k, v := range extra {
		p[k] = v
	}
	if err := b.states.Set(ctx, chatID, state, p); err != nil {
		b.log.Error("dialog state save failed", "chat_id", chatID, "state", state, "err", err)
	}
}

func (b *Bot) resetStep(ctx context.Context, chatID int64) {
	if err := b.states.Reset(ctx, chatID); err != nil {
		b.log.Error("dialog state reset failed", "chat_id", chatID, "err", err)
	}
}

// stepMessageID id экрана, к которому относится текущий шаг.
func stepMessageID(st *dialog.Item) (int, bool) {
	mid, ok := dialog.GetInt64(st.Payload, dialog.KeyMessageID)
	if !ok || mid <= 0 {
		return 0, false
	}
	return int(mid), true
}

// parseTail разбирает число в конце callback-данных: "rm:edit:12" -> 12.
func parseTail(data, prefix string) (int64, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseQuantity целое >= 0 из текста пользователя, допускает разделители тысяч.
func parseQuantity(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "un.")
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func escape(s string) string { return html.EscapeString(s) }
