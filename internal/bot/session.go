package bot

import (
	"context"
	"time"

	"github.com/Spok95/production-bot/internal/dialog"
	"github.com/Spok95/production-bot/internal/infra/metrics"
	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// session экраны одного чата. Живёт в памяти: после рестарта списки
// перечитываются с бэкенда при первом обращении.
type session struct {
	chatID     int64
	raw        *ui.RawMaterialsScreen
	products   *ui.ProductsScreen
	production *ui.ProductionView

	// ожидающее подтверждение удаления ("rm" или "pr")
	confirm       *ui.Confirm
	confirmPrefix string

	lastSeen time.Time
}

func (b *Bot) session(chatID int64) *session {
	if s, ok := b.sessions[chatID]; ok {
		s.lastSeen = b.now()
		return s
	}
	n := chatNotifier{b: b, chatID: chatID}
	s := &session{
		chatID:     chatID,
		raw:        ui.NewRawMaterialsScreen(b.rawStore, n, b.log.With("chat_id", chatID, "screen", "raw_materials")),
		products:   ui.NewProductsScreen(b.prodStore, b.rawStore, b.clock, n, b.log.With("chat_id", chatID, "screen", "products")),
		production: ui.NewProductionView(b.production),
		lastSeen:   b.now(),
	}
	s.products.Picker.OnSettle = func(ctx context.Context) { b.onPickerSettled(ctx, chatID) }
	b.sessions[chatID] = s
	return s
}

// onPickerSettled перерисовывает выбор сырья после отложенного поиска,
// если пользователь всё ещё на этом шаге.
// evictIdle забывает чаты, молчащие дольше ttl. Шаг диалога лежит в states и переживает это,
// открытая форма и загруженные списки собираются заново.
func (b *Bot) evictIdle(now time.Time, ttl time.Duration) int {
	n := 0
	for id, s := range b.sessions {
		if now.Sub(s.lastSeen) < ttl || s.products.Picker.Pending() {
			continue
		}
		delete(b.sessions, id)
		n++
	}
	return n
}

func (b *Bot) onPickerSettled(ctx context.Context, chatID int64) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil || st.State != dialog.StateProdSearch {
		return
	}
	mid, ok := stepMessageID(st)
	if !ok {
		return
	}
	b.showPicker(chatID, &mid)
}

// chatNotifier уведомления контроллеров отдельными сообщениями в чат.
type chatNotifier struct {
	b      *Bot
	chatID int64
}

func (n chatNotifier) Notify(x ui.Notification) {
	metrics.Notifications.WithLabelValues(string(x.Kind)).Inc()
	icon := "✅ "
	if x.Kind == ui.NotifyError {
		icon = "❌ "
	}
	n.b.send(tgbotapi.NewMessage(n.chatID, icon+x.Text))
}
