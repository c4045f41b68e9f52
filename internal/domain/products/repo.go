package products

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/infra/api"
)

const (
	routeList = "/products"
	routeItem = "/products/{id}"
)

type Repo struct{ api *api.Client }

func NewRepo(c *api.Client) *Repo { return &Repo{api: c} }

func (r *Repo) List(ctx context.Context, page, itemsPerPage int) (common.Page[Product], error) {
	if page <= 0 {
		page = DefaultPage
	}
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultItemsPerPage
	}
	params := url.Values{
		"page":         {strconv.Itoa(page)},
		"itemsPerPage": {strconv.Itoa(itemsPerPage)},
	}

	var out common.Page[Product]
	if err := r.api.Get(ctx, routeList, routeList, params, &out); err != nil {
		return common.Page[Product]{}, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *Repo) Create(ctx context.Context, cmd CreateCommand) (*Product, error) {
	if cmd.Materials == nil {
		cmd.Materials = []RequirementCommand{}
	}
	var p Product
	if err := r.api.Post(ctx, routeList, routeList, cmd, &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (r *Repo) Update(ctx context.Context, cmd UpdateCommand) (*Product, error) {
	if cmd.Materials == nil {
		cmd.Materials = []RequirementCommand{}
	}
	var p Product
	if err := r.api.Put(ctx, routeItem, itemPath(cmd.ID), cmd, &p); err != nil {
		return nil, fmt.Errorf("update product %d: %w", cmd.ID, err)
	}
	return &p, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, routeItem, itemPath(id)); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func itemPath(id int64) string { return routeList + "/" + strconv.FormatInt(id, 10) }
