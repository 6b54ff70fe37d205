package service

import (
	"context"

	"minishop/internal/core/identity"
	"minishop/internal/core/ordermatch"
	"minishop/internal/core/ownership"
	"minishop/internal/platform/logger"
	"minishop/internal/services/gate/domain"

	"golang.org/x/sync/errgroup"
)

// MyOrders returns the shop orders whose free text mentions the caller
func (s *Svc) MyOrders(ctx context.Context, c domain.Credentials) ([]domain.Order, error) {
	ctx, u, err := s.authenticate(ctx, c)
	if err != nil {
		return nil, err
	}
	if identity.Normalize(u.Username) == "" {
		return []domain.Order{}, nil
	}

	orders, err := s.shop.ListOrders(ctx)
	if err != nil {
		return nil, upstream(err, "list orders")
	}
	return ordermatch.Match(u.Username, orders, domain.Order.FreeText), nil
}

// MyProducts returns the products the caller is listed as owner of, in sheet order
// Products whose detail fetch fails or comes back empty are left out
func (s *Svc) MyProducts(ctx context.Context, c domain.Credentials) ([]domain.OwnedProduct, error) {
	ctx, u, err := s.authenticate(ctx, c)
	if err != nil {
		return nil, err
	}
	if identity.Normalize(u.Username) == "" {
		return []domain.OwnedProduct{}, nil
	}

	rows, err := s.rows.Read(ctx, s.products)
	if err != nil {
		return nil, upstream(err, "read ownership rows")
	}
	links := ownership.Resolve(u.Username, rows)
	if len(links) == 0 {
		return []domain.OwnedProduct{}, nil
	}

	log := logger.C(ctx).With().Str("component", "gate").Logger()
	found := make([]*domain.Product, len(links))

	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, l := range links {
		g.Go(func() error {
			p, err := s.shop.GetProduct(ctx, l.ProductID)
			switch {
			case err != nil:
				log.Warn().Err(err).Str("product_id", l.ProductID).Str("sku", l.SKU).Msg("product detail skipped")
			case p == nil:
				log.Info().Str("product_id", l.ProductID).Str("sku", l.SKU).Msg("product not found in shop")
			default:
				found[i] = p
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.OwnedProduct, 0, len(links))
	for i, l := range links {
		if found[i] != nil {
			out = append(out, domain.OwnedProduct{Link: l, Product: *found[i]})
		}
	}
	return out, nil
}
