package ui

import (
	"context"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/domain/production"
)

const (
	ProductionErrorText = "Não foi possível carregar os dados de produção."
	ProductionEmptyText = "Nenhum produto pode ser produzido com o estoque atual."
)

type ProductionSource interface {
	Get(ctx context.Context) (production.Snapshot, error)
}

// RankedProduct строка таблицы: ранг это позиция в ответе бэкенда, начиная с 1.
type RankedProduct struct {
	Rank int
	production.ProductDetail
}

type ProductionStats struct {
	TotalValue   common.Amount
	ProductCount int
	Top          *production.ProductDetail
}

// ProductionView снимок симуляции производства и производные значения для дашборда.
type ProductionView struct {
	src ProductionSource

	data     *production.Snapshot
	initial  bool
	fetching bool
	failed   bool
}

func NewProductionView(src ProductionSource) *ProductionView {
	return &ProductionView{src: src, initial: true}
}

// Mount всегда идёт на бэкенд, даже если снимок уже есть.
func (v *ProductionView) Mount(ctx context.Context) error { return v.Refresh(ctx) }

func (v *ProductionView) Refresh(ctx context.Context) error {
	v.fetching = true
	snap, err := v.src.Get(ctx)
	v.fetching = false
	v.initial = false
	if err != nil {
		// последний удачный снимок остаётся на экране рядом с баннером
		v.failed = true
		return err
	}
	v.failed = false
	v.data = &snap
	return nil
}

func (v *ProductionView) IsLoading() bool { return v.initial || v.fetching }
func (v *ProductionView) IsError() bool   { return v.failed }

// IsEmpty загружено, но производить нечего. Отличается от состояния ошибки.
func (v *ProductionView) IsEmpty() bool {
	return v.data != nil && len(v.data.Products) == 0
}

func (v *ProductionView) Snapshot() (production.Snapshot, bool) {
	if v.data == nil {
		return production.Snapshot{}, false
	}
	return *v.data, true
}

func (v *ProductionView) Products() []production.ProductDetail {
	if v.data == nil {
		return nil
	}
	return v.data.Products
}

// TopProduct максимум по MaxProductionCapacity; при равенстве побеждает первый.
func (v *ProductionView) TopProduct() *production.ProductDetail {
	return TopProduct(v.Products())
}

func TopProduct(items []production.ProductDetail) *production.ProductDetail {
	return production.Top(items)
}

// Stats итог берётся как есть из ответа, сумма не пересчитывается.
func (v *ProductionView) Stats() ProductionStats {
	s := ProductionStats{Top: v.TopProduct()}
	if v.data != nil {
		s.TotalValue = v.data.TotalProductionValue
		s.ProductCount = len(v.data.Products)
	}
	return s
}

// Rows без пересортировки: порядок ответа.
func (v *ProductionView) Rows() []RankedProduct {
	items := v.Products()
	out := make([]RankedProduct, 0, len(items))
	for i, p := range items {
		out = append(out, RankedProduct{Rank: i + 1, ProductDetail: p})
	}
	return out
}
