package ui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/domain/products"
)

const FieldMaterials = "materials"

type ProductsStore interface {
	List(ctx context.Context, page, itemsPerPage int) (common.Page[products.Product], error)
	Create(ctx context.Context, cmd products.CreateCommand) (*products.Product, error)
	Update(ctx context.Context, cmd products.UpdateCommand) (*products.Product, error)
	Delete(ctx context.Context, id int64) error
}

// MaterialRow строка состава в форме. RawMaterialID == 0: сырьё не выбрано.
type MaterialRow struct {
	RawMaterialID int64
	Name          string
	Quantity      int64
}

type ProductForm struct {
	Name      string
	Value     *common.Amount
	Materials []MaterialRow
}

func ValidateProduct(f ProductForm) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs[FieldName] = "Informe o nome."
	}
	switch {
	case f.Value == nil:
		errs[FieldValue] = "Informe o valor unitário."
	case f.Value.IsNegative():
		errs[FieldValue] = "O valor não pode ser negativo."
	}
	return errs
}

// MaterialCommands отбрасывает строки без сырья или с количеством <= 0.
func MaterialCommands(rows []MaterialRow) []products.RequirementCommand {
	out := make([]products.RequirementCommand, 0, len(rows))
	for _, r := range rows {
		if r.RawMaterialID == 0 || r.Quantity <= 0 {
			continue
		}
		out = append(out, products.RequirementCommand{RawMaterialID: r.RawMaterialID, Quantity: r.Quantity})
	}
	return out
}

// ProductsScreen список продуктов, форма и выбор сырья для состава.
type ProductsScreen struct {
	List *List[products.Product]
	*Controller[products.Product, ProductForm]
	Picker *OptionSearch

	log *slog.Logger
}

func NewProductsScreen(store ProductsStore, materials RawMaterialsStore, clock Clock, n Notifier, log *slog.Logger) *ProductsScreen {
	if log == nil {
		log = slog.Default()
	}
	list := NewList[products.Product](store.List)

	entity := Entity[products.Product, ProductForm]{
		Blank: func() ProductForm { return ProductForm{} },
		FromRecord: func(p products.Product) ProductForm {
			v := p.Value
			rows := make([]MaterialRow, 0, len(p.Materials))
			for _, m := range p.Materials {
				rows = append(rows, MaterialRow{RawMaterialID: m.RawMaterialID, Name: m.Name, Quantity: m.Quantity})
			}
			return ProductForm{Name: p.Name, Value: &v, Materials: rows}
		},
		Validate: ValidateProduct,
		Create: func(ctx context.Context, f ProductForm) error {
			_, err := store.Create(ctx, products.CreateCommand{
				Name:      strings.TrimSpace(f.Name),
				Value:     *f.Value,
				Materials: MaterialCommands(f.Materials),
			})
			return err
		},
		Update: func(ctx context.Context, rec products.Product, f ProductForm) error {
			_, err := store.Update(ctx, products.UpdateCommand{
				ID:        rec.ID,
				Name:      strings.TrimSpace(f.Name),
				Value:     *f.Value,
				Materials: MaterialCommands(f.Materials),
			})
			return err
		},
		Delete: store.Delete,
	}

	return &ProductsScreen{
		List:       list,
		Controller: NewController(entity, MessagesFor("Produto"), list, n, log),
		Picker:     NewOptionSearch(RawMaterialOptions(materials), clock),
		log:        log,
	}
}

// OpenCreate пустая форма и первая страница сырья без фильтра.
// Ошибка загрузки вариантов форму не закрывает.
func (s *ProductsScreen) OpenCreate(ctx context.Context) error {
	s.Controller.OpenCreate()
	if err := s.Picker.Reset(ctx, nil); err != nil {
		s.log.Warn("raw material options load failed", "err", err)
		return err
	}
	return nil
}

// OpenEdit уже выбранное сырьё попадает в варианты до любого поиска.
func (s *ProductsScreen) OpenEdit(ctx context.Context, rec products.Product) error {
	s.Controller.OpenEdit(rec)
	seed := make([]Option, 0, len(rec.Materials))
	for _, m := range rec.Materials {
		seed = append(seed, Option{Value: m.RawMaterialID, Label: m.Name})
	}
	if err := s.Picker.Reset(ctx, seed); err != nil {
		s.log.Warn("raw material options load failed", "err", err)
		return err
	}
	return nil
}

// AddMaterial добавляет строку состава; имя берётся из текущих вариантов.
// Повторный выбор того же сырья меняет количество в существующей строке.
func (s *ProductsScreen) AddMaterial(rawMaterialID, qty int64) {
	form := s.Form()
	name, _ := s.Picker.Label(rawMaterialID)
	for i := range form.Materials {
		if form.Materials[i].RawMaterialID == rawMaterialID {
			form.Materials[i].Quantity = qty
			if name != "" {
				form.Materials[i].Name = name
			}
			return
		}
	}
	form.Materials = append(form.Materials, MaterialRow{RawMaterialID: rawMaterialID, Name: name, Quantity: qty})
}

func (s *ProductsScreen) RemoveMaterial(i int) bool {
	form := s.Form()
	if i < 0 || i >= len(form.Materials) {
		return false
	}
	form.Materials = append(form.Materials[:i], form.Materials[i+1:]...)
	return true
}
