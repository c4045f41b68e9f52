package production

import (
	"context"
	"fmt"

	"github.com/Spok95/production-bot/internal/infra/api"
)

const route = "/production"

type Repo struct{ api *api.Client }

func NewRepo(c *api.Client) *Repo { return &Repo{api: c} }

func (r *Repo) Get(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	if err := r.api.Get(ctx, route, route, nil, &s); err != nil {
		return Snapshot{}, fmt.Errorf("get production: %w", err)
	}
	if s.Products == nil {
		s.Products = []ProductDetail{}
	}
	return s, nil
}
