package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/domain/rawmaterials"
)

const (
	FieldName          = "name"
	FieldStockQuantity = "stockQuantity"
	FieldValue         = "value"
)

type RawMaterialsStore interface {
	List(ctx context.Context, q rawmaterials.ListQuery) (common.Page[rawmaterials.RawMaterial], error)
	Create(ctx context.Context, cmd rawmaterials.CreateCommand) (*rawmaterials.RawMaterial, error)
	Update(ctx context.Context, cmd rawmaterials.UpdateCommand) (*rawmaterials.RawMaterial, error)
	Delete(ctx context.Context, id int64) error
}

// RawMaterialForm StockQuantity == nil: поле не заполнено.
type RawMaterialForm struct {
	Name          string
	StockQuantity *int64
}

func ValidateRawMaterial(f RawMaterialForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs[FieldName] = "Informe o nome."
	}
	switch {
	case f.StockQuantity == nil:
		errs[FieldStockQuantity] = "Informe a quantidade em estoque."
	case *f.StockQuantity < 0:
		errs[FieldStockQuantity] = "A quantidade não pode ser negativa."
	}
	return errs
}

type RawMaterialsScreen struct {
	List *List[rawmaterials.RawMaterial]
	*Controller[rawmaterials.RawMaterial, RawMaterialForm]
}

func NewRawMaterialsScreen(store RawMaterialsStore, n Notifier, log *slog.Logger) *RawMaterialsScreen {
	list := NewList(func(ctx context.Context, page, perPage int) (common.Page[rawmaterials.RawMaterial], error) {
		return store.List(ctx, rawmaterials.ListQuery{Page: page, ItemsPerPage: perPage})
	})

	entity := Entity[rawmaterials.RawMaterial, RawMaterialForm]{
		Blank: func() RawMaterialForm { return RawMaterialForm{} },
		FromRecord: func(r rawmaterials.RawMaterial) RawMaterialForm {
			q := r.StockQuantity
			return RawMaterialForm{Name: r.Name, StockQuantity: &q}
		},
		Validate: ValidateRawMaterial,
		Create: func(ctx context.Context, f RawMaterialForm) error {
			_, err := store.Create(ctx, rawmaterials.CreateCommand{
				Name:          strings.TrimSpace(f.Name),
				StockQuantity: *f.StockQuantity,
			})
			return err
		},
		Update: func(ctx context.Context, rec rawmaterials.RawMaterial, f RawMaterialForm) error {
			_, err := store.Update(ctx, rawmaterials.UpdateCommand{
				ID:            rec.ID,
				Name:          strings.TrimSpace(f.Name),
				StockQuantity: *f.StockQuantity,
			})
			return err
		},
		Delete: store.Delete,
	}

	return &RawMaterialsScreen{
		List:       list,
		Controller: NewController(entity, MessagesFor("Insumo"), list, n, log),
	}
}

// RawMaterialOptions источник вариантов для выбора сырья: поиск по подстроке имени.
func RawMaterialOptions(store RawMaterialsStore) SearchFunc {
	return func(ctx context.Context, text string, page, pageSize int) (common.Page[Option], error) {
		res, err := store.List(ctx, rawmaterials.ListQuery{Page: page, ItemsPerPage: pageSize, Name: text})
		if err != nil {
			return common.Page[Option]{}, err
		}
		out := common.Page[Option]{
			Data:        make([]Option, 0, len(res.Data)),
			CurrentPage: res.CurrentPage,
			TotalItems:  res.TotalItems,
			TotalPages:  res.TotalPages,
		}
		for _, m := range res.Data {
			out.Data = append(out.Data, Option{Value: m.ID, Label: m.Name})
		}
		return out, nil
	}
}
