package ui

import (
	"context"
	"time"

	"github.com/Spok95/production-bot/internal/domain/common"
)

const (
	SearchDebounce = 300 * time.Millisecond
	SearchPageSize = 20
)

// Option элемент выпадающего списка: Value = id сырья, Label = название.
type Option struct {
	Value int64
	Label string
}

type SearchFunc func(ctx context.Context, text string, page, pageSize int) (common.Page[Option], error)

// OptionSearch постраничный поиск сырья для выбора в форме продукта.
//
// Поиск с задержкой: каждый новый ввод останавливает таймер и увеличивает поколение,
// так что отменённый запрос вообще не уходит на бэкенд. Догрузка (LoadMore) добавляет
// следующую страницу к текущему списку. Не потокобезопасен: все вызовы и колбэки
// таймера должны идти из одного цикла событий.
type OptionSearch struct {
	search SearchFunc
	clock  Clock

	// OnSettle вызывается после того, как отложенный поиск применил результат.
	OnSettle func(ctx context.Context)

	options  []Option
	hasMore  bool
	text     string
	page     int
	inFlight bool
	failed   bool
	gen      uint64
	pending  Timer
}

func NewOptionSearch(search SearchFunc, clock Clock) *OptionSearch {
	return &OptionSearch{search: search, clock: clock, page: 1}
}

func (s *OptionSearch) Options() []Option {
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

func (s *OptionSearch) HasMore() bool   { return s.hasMore }
func (s *OptionSearch) IsLoading() bool { return s.inFlight }
func (s *OptionSearch) IsError() bool   { return s.failed }
func (s *OptionSearch) Text() string    { return s.text }
func (s *OptionSearch) Page() int       { return s.page }
func (s *OptionSearch) Pending() bool   { return s.pending != nil }

func (s *OptionSearch) Label(value int64) (string, bool) {
	for _, o := range s.options {
		if o.Value == value {
			return o.Label, true
		}
	}
	return "", false
}

// OnSearch планирует поиск по text через SearchDebounce. Повторный вызов внутри окна
// отменяет предыдущий.
func (s *OptionSearch) OnSearch(ctx context.Context, text string) {
	s.cancelPending()
	gen := s.gen
	s.pending = s.clock.AfterFunc(SearchDebounce, func() {
		if gen != s.gen {
			return
		}
		s.pending = nil
		// при ошибке остаются прежние текст, страница и варианты
		if err := s.load(ctx, gen, text, 1, false); err == nil && gen == s.gen {
			s.text = text
			s.page = 1
		}
		if s.OnSettle != nil {
			s.OnSettle(ctx)
		}
	})
}

// LoadMore следующая страница с тем же текстом поиска. Ничего не делает, если
// страниц больше нет или запрос уже идёт.
func (s *OptionSearch) LoadMore(ctx context.Context) error {
	if !s.hasMore || s.inFlight {
		return nil
	}
	next := s.page + 1
	gen := s.gen
	if err := s.load(ctx, gen, s.text, next, true); err != nil {
		return err
	}
	if gen == s.gen {
		s.page = next
	}
	return nil
}

// Reset сбрасывает поиск, кладёт seed первыми и догружает первую страницу без фильтра.
func (s *OptionSearch) Reset(ctx context.Context, seed []Option) error {
	s.cancelPending()
	s.text = ""
	s.page = 1
	s.hasMore = false
	s.failed = false
	s.options = mergeOptions(nil, seed)
	return s.load(ctx, s.gen, "", 1, true)
}

func (s *OptionSearch) cancelPending() {
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *OptionSearch) load(ctx context.Context, gen uint64, text string, page int, appendMode bool) error {
	s.inFlight = true
	res, err := s.search(ctx, text, page, SearchPageSize)
	s.inFlight = false
	if gen != s.gen {
		// результат устарел: пока шёл запрос, начался новый поиск
		return nil
	}
	if err != nil {
		s.failed = true
		return err
	}
	s.failed = false

	var base []Option
	if appendMode {
		base = s.options
	}
	s.options = mergeOptions(base, res.Data)
	s.hasMore = res.HasMore()
	return nil
}

// mergeOptions склеивает списки без дублей по Value: позиция по первому вхождению,
// подпись по последнему.
func mergeOptions(base, extra []Option) []Option {
	out := make([]Option, 0, len(base)+len(extra))
	idx := make(map[int64]int, len(base)+len(extra))
	for _, list := range [][]Option{base, extra} {
		for _, o := range list {
			if i, ok := idx[o.Value]; ok {
				out[i].Label = o.Label
				continue
			}
			idx[o.Value] = len(out)
			out = append(out, o)
		}
	}
	return out
}
