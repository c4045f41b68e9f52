package rawmaterials

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/infra/api"
)

const (
	routeList = "/raw-materials"
	routeItem = "/raw-materials/{id}"
)

type Repo struct{ api *api.Client }

func NewRepo(c *api.Client) *Repo { return &Repo{api: c} }

func (r *Repo) List(ctx context.Context, q ListQuery) (common.Page[RawMaterial], error) {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.ItemsPerPage <= 0 {
		q.ItemsPerPage = DefaultItemsPerPage
	}
	params := url.Values{
		"page":         {strconv.Itoa(q.Page)},
		"itemsPerPage": {strconv.Itoa(q.ItemsPerPage)},
	}
	if name := strings.TrimSpace(q.Name); name != "" {
		params.Set("name", name)
	}

	var out common.Page[RawMaterial]
	if err := r.api.Get(ctx, routeList, routeList, params, &out); err != nil {
		return common.Page[RawMaterial]{}, fmt.Errorf("list raw materials: %w", err)
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, cmd CreateCommand) (*RawMaterial, error) {
	var m RawMaterial
	if err := r.api.Post(ctx, routeList, routeList, cmd, &m); err != nil {
		return nil, fmt.Errorf("create raw material: %w", err)
	}
	return &m, nil
}

func (r *Repo) Update(ctx context.Context, cmd UpdateCommand) (*RawMaterial, error) {
	var m RawMaterial
	if err := r.api.Put(ctx, routeItem, itemPath(cmd.ID), cmd, &m); err != nil {
		return nil, fmt.Errorf("update raw material %d: %w", cmd.ID, err)
	}
	return &m, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, routeItem, itemPath(id)); err != nil {
		return fmt.Errorf("delete raw material %d: %w", id, err)
	}
	return nil
}

func itemPath(id int64) string { return routeList + "/" + strconv.FormatInt(id, 10) }
