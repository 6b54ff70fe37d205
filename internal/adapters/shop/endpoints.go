package shop

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	perr "minishop/internal/platform/errors"
	"minishop/internal/services/gate/domain"
)

const (
	pathOrdersList = "/api/orders/list"
	pathProductGet = "/api/products/get"
	pathPing       = "/api/ping"
)

// ListOrders returns every order the shop exposes, oldest first as the shop sends them
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	b, err := c.post(ctx, pathOrdersList, url.Values{}, false)
	if err != nil {
		return nil, err
	}
	var env ordersEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "shop decode orders")
	}
	if env.Orders == nil {
		env.Orders = []domain.Order{}
	}
	return env.Orders, nil
}

// GetProduct fetches one product. A missing product is (nil, nil)
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, perr.InvalidArgf("shop: empty product id")
	}
	b, err := c.post(ctx, pathProductGet, url.Values{"product_id": {productID}}, true)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var env productEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "shop decode product %s", productID)
	}
	return env.Product, nil
}

// Ping checks that at least one host answers the ping route
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.post(ctx, pathPing, url.Values{}, false)
	return err
}
