package ui

import (
	"context"
	"testing"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/domain/production"
)

type stubProduction struct {
	snap  production.Snapshot
	err   error
	calls int
}

func (s *stubProduction) Get(context.Context) (production.Snapshot, error) {
	s.calls++
	return s.snap, s.err
}

func TestTopProduct(t *testing.T) {
	items := []production.ProductDetail{
		{ID: 1, Name: "Mesa", MaxProductionCapacity: 80},
		{ID: 2, Name: "Cadeira", MaxProductionCapacity: 120},
	}
	top := TopProduct(items)
	if top == nil || top.ID != 2 {
		t.Fatalf("top = %+v, want id 2", top)
	}
	if TopProduct(nil) != nil {
		t.Fatal("top of empty must be nil")
	}

	tie := []production.ProductDetail{{ID: 1, MaxProductionCapacity: 5}, {ID: 2, MaxProductionCapacity: 5}}
	if TopProduct(tie).ID != 1 {
		t.Fatal("tie must keep first occurrence")
	}
}

func TestProductionViewStatsAndRows(t *testing.T) {
	src := &stubProduction{snap: production.Snapshot{
		Products: []production.ProductDetail{
			{ID: 3, Name: "Banco", MaxProductionCapacity: 10},
			{ID: 1, Name: "Mesa", MaxProductionCapacity: 40},
		},
		TotalProductionValue: common.AmountFromFloat(999.5),
	}}
	v := NewProductionView(src)
	if !v.IsLoading() {
		t.Fatal("must be loading before first fetch")
	}
	if err := v.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if v.IsLoading() || v.IsError() || v.IsEmpty() {
		t.Fatal("unexpected flags after successful load")
	}

	st := v.Stats()
	if st.ProductCount != 2 || st.Top == nil || st.Top.Name != "Mesa" {
		t.Fatalf("stats = %+v", st)
	}
	if !st.TotalValue.Equal(common.AmountFromFloat(999.5).Decimal) {
		t.Fatalf("total = %s, backend value expected", st.TotalValue)
	}

	rows := v.Rows()
	if rows[0].Rank != 1 || rows[0].Name != "Banco" || rows[1].Rank != 2 {
		t.Fatalf("rows reordered: %+v", rows)
	}
}

func TestProductionViewKeepsDataOnError(t *testing.T) {
	src := &stubProduction{snap: production.Snapshot{
		Products: []production.ProductDetail{{ID: 1, Name: "Mesa", MaxProductionCapacity: 4}},
	}}
	v := NewProductionView(src)
	ctx := context.Background()
	_ = v.Mount(ctx)

	src.err = errBackend
	if err := v.Refresh(ctx); err == nil {
		t.Fatal("expected error")
	}
	if !v.IsError() || len(v.Rows()) != 1 {
		t.Fatalf("error=%v rows=%d", v.IsError(), len(v.Rows()))
	}
	if src.calls != 2 {
		t.Fatalf("calls = %d", src.calls)
	}
}

func TestProductionViewEmpty(t *testing.T) {
	v := NewProductionView(&stubProduction{snap: production.Snapshot{Products: []production.ProductDetail{}}})
	_ = v.Mount(context.Background())
	if !v.IsEmpty() || v.IsError() {
		t.Fatal("empty snapshot must be empty, not error")
	}
	if v.TopProduct() != nil {
		t.Fatal("top product of empty snapshot")
	}

	failed := NewProductionView(&stubProduction{err: errBackend})
	_ = failed.Mount(context.Background())
	if failed.IsEmpty() || !failed.IsError() {
		t.Fatal("failed first load must be error, not empty")
	}
}
