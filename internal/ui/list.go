package ui

import (
	"context"

	"github.com/Spok95/production-bot/internal/domain/common"
)

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 10
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

type FetchFunc[T any] func(ctx context.Context, page, itemsPerPage int) (common.Page[T], error)

// List состояние одной постраничной таблицы: страница, размер страницы, статус загрузки.
// Любое изменение пары (страница, размер) перезапрашивает данные.
type List[T any] struct {
	fetch FetchFunc[T]

	page    int
	perPage int
	status  Status
	data    common.Page[T]
	err     error
}

func NewList[T any](fetch FetchFunc[T]) *List[T] {
	return &List[T]{
		fetch:   fetch,
		page:    DefaultPage,
		perPage: DefaultItemsPerPage,
	}
}

// Mount вход на экран: всегда свежий запрос, даже если данные уже есть.
func (l *List[T]) Mount(ctx context.Context) error { return l.load(ctx) }

func (l *List[T]) Refetch(ctx context.Context) error { return l.load(ctx) }

func (l *List[T]) SetCurrentPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}
	l.page = n
	return l.load(ctx)
}

func (l *List[T]) SetItemsPerPage(ctx context.Context, n int) error {
	if n < 1 {
		n = DefaultItemsPerPage
	}
	l.perPage = n
	return l.load(ctx)
}

func (l *List[T]) CurrentPage() int  { return l.page }
func (l *List[T]) ItemsPerPage() int { return l.perPage }
func (l *List[T]) Status() Status    { return l.status }
func (l *List[T]) IsLoading() bool   { return l.status == StatusLoading }
func (l *List[T]) IsError() bool     { return l.status == StatusError }
func (l *List[T]) Err() error        { return l.err }

// Data при ошибке отдаёт пустую страницу: устаревшие строки не показываем.
func (l *List[T]) Data() common.Page[T] {
	if l.status != StatusSuccess {
		return common.Page[T]{}
	}
	return l.data
}

func (l *List[T]) Items() []T      { return l.Data().Data }
func (l *List[T]) TotalItems() int { return l.Data().TotalItems }

// TotalPages не меньше 1, чтобы пейджер всегда показывал "1/1".
func (l *List[T]) TotalPages() int {
	if n := l.Data().TotalPages; n > 0 {
		return n
	}
	return 1
}

func (l *List[T]) load(ctx context.Context) error {
	l.status = StatusLoading
	page, err := l.fetch(ctx, l.page, l.perPage)
	if err != nil {
		l.status = StatusError
		l.err = err
		l.data = common.Page[T]{}
		return err
	}
	l.status = StatusSuccess
	l.err = nil
	l.data = page
	return nil
}
