package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/domain/products"
	"github.com/Spok95/production-bot/internal/domain/rawmaterials"
)

var errBackend = errors.New("backend down")

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

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
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

type notes struct{ got []Notification }

func (n *notes) Notify(x Notification) { n.got = append(n.got, x) }

// memRawMaterials хранилище сырья в памяти, считает вызовы.
type memRawMaterials struct {
	items   []rawmaterials.RawMaterial
	nextID  int64
	queries []rawmaterials.ListQuery
	creates int
	updates int
	deletes []int64

	listErr   error
	mutateErr error
}

func (m *memRawMaterials) List(_ context.Context, q rawmaterials.ListQuery) (common.Page[rawmaterials.RawMaterial], error) {
	m.queries = append(m.queries, q)
	if m.listErr != nil {
		return common.Page[rawmaterials.RawMaterial]{}, m.listErr
	}
	var filtered []rawmaterials.RawMaterial
	for _, it := range m.items {
		if q.Name == "" || strings.Contains(strings.ToLower(it.Name), strings.ToLower(q.Name)) {
			filtered = append(filtered, it)
		}
	}
	return paginate(filtered, q.Page, q.ItemsPerPage), nil
}

func (m *memRawMaterials) Create(_ context.Context, cmd rawmaterials.CreateCommand) (*rawmaterials.RawMaterial, error) {
	m.creates++
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	m.nextID++
	r := rawmaterials.RawMaterial{ID: m.nextID, Name: cmd.Name, StockQuantity: cmd.StockQuantity}
	m.items = append(m.items, r)
	return &r, nil
}

func (m *memRawMaterials) Update(_ context.Context, cmd rawmaterials.UpdateCommand) (*rawmaterials.RawMaterial, error) {
	m.updates++
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
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
	if m.mutateErr != nil {
		return m.mutateErr
	}
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

type memProducts struct {
	items     []products.Product
	created   []products.CreateCommand
	updated   []products.UpdateCommand
	mutateErr error
}

func (m *memProducts) List(_ context.Context, page, perPage int) (common.Page[products.Product], error) {
	return paginate(m.items, page, perPage), nil
}

func (m *memProducts) Create(_ context.Context, cmd products.CreateCommand) (*products.Product, error) {
	m.created = append(m.created, cmd)
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	p := products.Product{ID: int64(len(m.items) + 1), Name: cmd.Name, Value: cmd.Value}
	m.items = append(m.items, p)
	return &p, nil
}

func (m *memProducts) Update(_ context.Context, cmd products.UpdateCommand) (*products.Product, error) {
	m.updated = append(m.updated, cmd)
	if m.mutateErr != nil {
		return nil, m.mutateErr
	}
	p := products.Product{ID: cmd.ID, Name: cmd.Name, Value: cmd.Value}
	return &p, nil
}

func (m *memProducts) Delete(context.Context, int64) error { return m.mutateErr }

func paginate[T any](items []T, page, perPage int) common.Page[T] {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}
	total := len(items)
	pages := (total + perPage - 1) / perPage
	from := (page - 1) * perPage
	if from > total {
		from = total
	}
	to := from + perPage
	if to > total {
		to = total
	}
	out := make([]T, to-from)
	copy(out, items[from:to])
	return common.Page[T]{Data: out, CurrentPage: page, TotalItems: total, TotalPages: pages}
}

func ptr[T any](v T) *T { return &v }
