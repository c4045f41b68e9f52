package common

// Page ответ бэкенда для постраничных списков.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"currentPage"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}

func (p Page[T]) HasMore() bool { return p.CurrentPage < p.TotalPages }
