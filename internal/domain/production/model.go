package production

import "github.com/Spok95/production-bot/internal/domain/common"

// ProductDetail строка симуляции: сколько единиц можно выпустить из текущих остатков.
// Считает бэкенд, здесь только чтение.
type ProductDetail struct {
	ID                    int64         `json:"id"`
	Name                  string        `json:"name"`
	MaxProductionCapacity int64         `json:"maxProductionCapacity"`
	TotalValue            common.Amount `json:"totalValue"`
}

type Snapshot struct {
	Products             []ProductDetail `json:"products"`
	TotalProductionValue common.Amount   `json:"totalProductionValue"`
}

// Top продукт с максимальной MaxProductionCapacity; при равенстве первый по порядку.
// nil для пустого списка.
func Top(items []ProductDetail) *ProductDetail {
	var best *ProductDetail
	for i := range items {
		if best == nil || items[i].MaxProductionCapacity > best.MaxProductionCapacity {
			best = &items[i]
		}
	}
	return best
}
