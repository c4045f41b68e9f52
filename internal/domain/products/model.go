package products

import "github.com/Spok95/production-bot/internal/domain/common"

const (
	DefaultPage         = 1
	DefaultItemsPerPage = 10
)

// Requirement сколько единиц сырья уходит на одну единицу продукта.
type Requirement struct {
	RawMaterialID int64  `json:"rawMaterialId"`
	Name          string `json:"name"`
	Quantity      int64  `json:"quantity"`
}

type Product struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Value     common.Amount `json:"value"`
	Materials []Requirement `json:"materials"`
}

type RequirementCommand struct {
	RawMaterialID int64 `json:"rawMaterialId"`
	Quantity      int64 `json:"quantity"`
}

type CreateCommand struct {
	Name      string               `json:"name"`
	Value     common.Amount        `json:"value"`
	Materials []RequirementCommand `json:"materials"`
}

type UpdateCommand struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	Value     common.Amount        `json:"value"`
	Materials []RequirementCommand `json:"materials"`
}

func (p Product) EntityID() int64 { return p.ID }
