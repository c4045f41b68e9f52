package rawmaterials

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/infra/api"
)

func newRepo(t *testing.T, h http.HandlerFunc) *Repo {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRepo(api.New(srv.URL, time.Second, nil))
}

func TestListQueryParams(t *testing.T) {
	var gotQuery []string
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = append(gotQuery, r.URL.RawQuery)
		_ = json.NewEncoder(w).Encode(common.Page[RawMaterial]{
			Data:        []RawMaterial{{ID: 1, Name: "Aço", StockQuantity: 100}},
			CurrentPage: 1, TotalItems: 1, TotalPages: 1,
		})
	})

	page, err := repo.List(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Name != "Aço" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if _, err := repo.List(context.Background(), ListQuery{Page: 3, ItemsPerPage: 5, Name: " aç "}); err != nil {
		t.Fatalf("List: %v", err)
	}

	if gotQuery[0] != "itemsPerPage=20&page=1" {
		t.Fatalf("default query = %q", gotQuery[0])
	}
	if gotQuery[1] != "itemsPerPage=5&name=a%C3%A7&page=3" {
		t.Fatalf("filtered query = %q", gotQuery[1])
	}
}

func TestCreateUpdateDelete(t *testing.T) {
	var calls []string
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			var cmd CreateCommand
			_ = json.NewDecoder(r.Body).Decode(&cmd)
			_ = json.NewEncoder(w).Encode(RawMaterial{ID: 9, Name: cmd.Name, StockQuantity: cmd.StockQuantity})
		case http.MethodPut:
			var cmd UpdateCommand
			_ = json.NewDecoder(r.Body).Decode(&cmd)
			_ = json.NewEncoder(w).Encode(RawMaterial(cmd))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateCommand{Name: "Aço", StockQuantity: 100})
	if err != nil || created.ID != 9 {
		t.Fatalf("Create = %+v, %v", created, err)
	}
	updated, err := repo.Update(ctx, UpdateCommand{ID: 9, Name: "Aço 2mm", StockQuantity: 50})
	if err != nil || updated.Name != "Aço 2mm" {
		t.Fatalf("Update = %+v, %v", updated, err)
	}
	if err := repo.Delete(ctx, 9); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := []string{"POST /raw-materials", "PUT /raw-materials/9", "DELETE /raw-materials/9"}
	for i, c := range want {
		if calls[i] != c {
			t.Fatalf("call %d = %q, want %q", i, calls[i], c)
		}
	}
}

func TestListError(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := repo.List(context.Background(), ListQuery{}); err == nil {
		t.Fatal("expected error")
	}
}
