package bot

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Spok95/production-bot/internal/dialog"
	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/domain/production"
	"github.com/Spok95/production-bot/internal/domain/products"
	"github.com/Spok95/production-bot/internal/domain/rawmaterials"
	"github.com/Spok95/production-bot/internal/domain/users"
	"github.com/Spok95/production-bot/internal/infra/logger"
	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	testChatID  int64 = 100
	testAdminID int64 = 42
)

var errBackend = errors.New("backend down")

// fakeSender запоминает всё отправленное, id сообщений растут с 1.
type fakeSender struct {
	next     int
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	f.next++
	return tgbotapi.Message{MessageID: f.next, Chat: &tgbotapi.Chat{ID: testChatID}}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func chattableText(c tgbotapi.Chattable) string {
	switch m := c.(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	case tgbotapi.DocumentConfig:
		return m.Caption
	}
	return ""
}

// lastText текст последнего сообщения или правки с текстом.
func (f *fakeSender) lastText() string {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if s := chattableText(f.sent[i]); s != "" {
			return s
		}
	}
	return ""
}

func (f *fakeSender) anyText(sub string) bool {
	for _, c := range f.sent {
		if strings.Contains(chattableText(c), sub) {
			return true
		}
	}
	return false
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ui.Timer {
	t := &fakeTimer{at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
	for _, t := range append([]*fakeTimer(nil), c.timers...) {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			t.f()
		}
	}
}

type memRawMaterials struct {
	items   []rawmaterials.RawMaterial
	queries []rawmaterials.ListQuery
	deletes []int64
	listErr error
}

func (m *memRawMaterials) List(_ context.Context, q rawmaterials.ListQuery) (common.Page[rawmaterials.RawMaterial], error) {
	m.queries = append(m.queries, q)
	if m.listErr != nil {
		return common.Page[rawmaterials.RawMaterial]{}, m.listErr
	}
	var out []rawmaterials.RawMaterial
	for _, it := range m.items {
		if q.Name == "" || strings.Contains(strings.ToLower(it.Name), strings.ToLower(q.Name)) {
			out = append(out, it)
		}
	}
	return page(out, q.Page, q.ItemsPerPage), nil
}

func (m *memRawMaterials) Create(_ context.Context, cmd rawmaterials.CreateCommand) (*rawmaterials.RawMaterial, error) {
	r := rawmaterials.RawMaterial{ID: int64(len(m.items) + 1), Name: cmd.Name, StockQuantity: cmd.StockQuantity}
	m.items = append(m.items, r)
	return &r, nil
}

func (m *memRawMaterials) Update(_ context.Context, cmd rawmaterials.UpdateCommand) (*rawmaterials.RawMaterial, error) {
	for i := range m.items {
		if m.items[i].ID == cmd.ID {
			m.items[i] = rawmaterials.RawMaterial(cmd)
			r := m.items[i]
			return &r, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memRawMaterials) Delete(_ context.Context, id int64) error {
	m.deletes = append(m.deletes, id)
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

type memProducts struct {
	items   []products.Product
	created []products.CreateCommand
}

func (m *memProducts) List(_ context.Context, p, perPage int) (common.Page[products.Product], error) {
	return page(m.items, p, perPage), nil
}

func (m *memProducts) Create(_ context.Context, cmd products.CreateCommand) (*products.Product, error) {
	m.created = append(m.created, cmd)
	p := products.Product{ID: int64(len(m.items) + 1), Name: cmd.Name, Value: cmd.Value}
	m.items = append(m.items, p)
	return &p, nil
}

func (m *memProducts) Update(_ context.Context, cmd products.UpdateCommand) (*products.Product, error) {
	p := products.Product{ID: cmd.ID, Name: cmd.Name, Value: cmd.Value}
	return &p, nil
}

func (m *memProducts) Delete(context.Context, int64) error { return nil }

type fakeProduction struct {
	snap production.Snapshot
	err  error
}

func (f *fakeProduction) Get(context.Context) (production.Snapshot, error) { return f.snap, f.err }

func page[T any](items []T, p, perPage int) common.Page[T] {
	if perPage <= 0 {
		perPage = 10
	}
	if p <= 0 {
		p = 1
	}
	total := len(items)
	from := min((p-1)*perPage, total)
	to := min(from+perPage, total)
	out := make([]T, to-from)
	copy(out, items[from:to])
	return common.Page[T]{Data: out, CurrentPage: p, TotalItems: total, TotalPages: (total + perPage - 1) / perPage}
}

type harness struct {
	bot   *Bot
	api   *fakeSender
	clock *fakeClock
	raw   *memRawMaterials
	prods *memProducts
	prod  *fakeProduction
	users *users.MemRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api:   &fakeSender{},
		clock: &fakeClock{},
		raw:   &memRawMaterials{},
		prods: &memProducts{},
		prod:  &fakeProduction{},
		users: users.NewMemRepo(),
	}
	h.bot = New(h.api, logger.NewWithWriter(io.Discard, "test"), Deps{
		Users:        h.users,
		States:       dialog.NewMemStore(),
		RawMaterials: h.raw,
		Products:     h.prods,
		Production:   h.prod,
		AdminChatID:  testAdminID,
	})
	// сессии создаются лениво, подменяем часы до первого апдейта
	h.bot.clock = h.clock
	return h
}

func (h *harness) command(text string) {
	cmd := strings.Fields(text)[0]
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: testChatID},
		From:     &tgbotapi.User{ID: testAdminID, UserName: "admin"},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}})
}

func (h *harness) text(text string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: testChatID},
		From: &tgbotapi.User{ID: testChatID},
	}})
}

func (h *harness) callback(msgID int, data string) {
	h.callbackFrom(testAdminID, msgID, data)
}

func (h *harness) callbackFrom(userID int64, msgID int, data string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: userID},
		Data:    data,
		Message: &tgbotapi.Message{MessageID: msgID, Chat: &tgbotapi.Chat{ID: testChatID}},
	}})
}

// lastAnswer последний ответ на нажатие кнопки.
func (f *fakeSender) lastAnswer() (tgbotapi.CallbackConfig, bool) {
	for i := len(f.requests) - 1; i >= 0; i-- {
		if c, ok := f.requests[i].(tgbotapi.CallbackConfig); ok {
			return c, true
		}
	}
	return tgbotapi.CallbackConfig{}, false
}

// step текущий шаг диалога и id его экрана.
func (h *harness) step(t *testing.T) (dialog.State, int) {
	t.Helper()
	st, err := h.bot.states.Get(context.Background(), testChatID)
	if err != nil {
		t.Fatalf("states.Get: %v", err)
	}
	mid, _ := stepMessageID(st)
	return st.State, mid
}
