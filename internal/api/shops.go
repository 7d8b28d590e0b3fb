package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
)

type ShopsClient struct{ c *Client }

func NewShopsClient(c *Client) *ShopsClient { return &ShopsClient{c: c} }

func (sc *ShopsClient) Get(ctx context.Context, id string) (domain.Shop, error) {
	var shop domain.Shop
	if err := sc.c.getJSON(ctx, "/api/shops/"+url.PathEscape(id)+"/", nil, &shop); err != nil {
		return domain.Shop{}, fmt.Errorf("get shop %s: %w", id, err)
	}
	return shop, nil
}

func (sc *ShopsClient) List(ctx context.Context) ([]domain.Shop, error) {
	var shops []domain.Shop
	if err := sc.c.getJSON(ctx, "/api/shops/", nil, &shops); err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}
