package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Spok95/production-bot/internal/dialog"
	"github.com/Spok95/production-bot/internal/domain/users"
	"github.com/Spok95/production-bot/internal/infra/metrics"
	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender часть *tgbotapi.BotAPI, которой пользуется бот.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Deps struct {
	Users        users.Store
	States       dialog.Store
	RawMaterials ui.RawMaterialsStore
	Products     ui.ProductsStore
	Production   ui.ProductionSource
	AdminChatID  int64
	// Location пояс дат в выгрузках, nil это time.Local.
	Location *time.Location
}

type Bot struct {
	api        Sender
	log        *slog.Logger
	users      users.Store
	states     dialog.Store
	adminChat  int64
	rawStore   ui.RawMaterialsStore
	prodStore  ui.ProductsStore
	production ui.ProductionSource
	loc        *time.Location
	now        func() time.Time

	clock    ui.Clock
	tasks    chan func()
	done     chan struct{}
	doneOnce sync.Once

	sessions map[int64]*session
}

func New(api Sender, log *slog.Logger, d Deps) *Bot {
	if log == nil {
		log = slog.Default()
	}
	b := &Bot{
		api:        api,
		log:        log,
		users:      d.Users,
		states:     d.States,
		adminChat:  d.AdminChatID,
		rawStore:   d.RawMaterials,
		prodStore:  d.Products,
		production: d.Production,
		loc:        d.Location,
		now:        time.Now,
		tasks:      make(chan func(), 16),
		done:       make(chan struct{}),
		sessions:   map[int64]*session{},
	}
	if b.loc == nil {
		b.loc = time.Local
	}
	b.clock = loopClock{tasks: b.tasks, done: b.done}
	return b
}

// Сессии чатов живут в памяти; без апдейтов дольше sessionTTL выбрасываются.
const (
	sessionTTL   = 24 * time.Hour
	sessionSweep = time.Hour
)

// Run единственный цикл событий бота: апдейты Telegram и сработавшие таймеры
// обрабатываются строго по очереди.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	defer b.doneOnce.Do(func() { close(b.done) })
	sweep := time.NewTicker(sessionSweep)
	defer sweep.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-b.tasks:
			f()
		case <-sweep.C:
			if n := b.evictIdle(b.now(), sessionTTL); n > 0 {
				b.log.Debug("idle sessions evicted", "count", n, "left", len(b.sessions))
			}
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		b.onMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		metrics.BotUpdates.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		metrics.BotUpdates.WithLabelValues("command").Inc()
		b.handleCommand(ctx, msg)
		return
	}
	metrics.BotUpdates.WithLabelValues("message").Inc()
	b.handleStateMessage(ctx, msg)
}

// loopClock таймеры, чьи колбэки выполняются внутри Run.
type loopClock struct {
	tasks chan<- func()
	done  <-chan struct{}
}

func (c loopClock) AfterFunc(d time.Duration, f func()) ui.Timer {
	return time.AfterFunc(d, func() {
		select {
		case c.tasks <- f:
		case <-c.done:
		}
	})
}
