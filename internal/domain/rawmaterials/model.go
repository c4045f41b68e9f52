package rawmaterials

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 20
)

type RawMaterial struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StockQuantity int64  `json:"stockQuantity"`
}

type CreateCommand struct {
	Name          string `json:"name"`
	StockQuantity int64  `json:"stockQuantity"`
}

type UpdateCommand struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StockQuantity int64  `json:"stockQuantity"`
}

// ListQuery Name: подстрока без учёта регистра, пустая строка = без фильтра.
type ListQuery struct {
	Page         int
	ItemsPerPage int
	Name         string
}

func (m RawMaterial) EntityID() int64 { return m.ID }
