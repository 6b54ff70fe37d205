// Package http provides http transport for the miniapp endpoints
package http

import (
	stdhttp "net/http"

	"minishop/internal/modkit/httpkit"
	"minishop/internal/services/api/miniapp/domain"
	gate "minishop/internal/services/gate/domain"
)

// maxBody bounds a request, initData is a few kilobytes at most
const maxBody = 64 << 10

// Register mounts the routes
func Register(r httpkit.Router, s gate.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostBound[domain.AuthRequest](r, "/auth", maxBody, h.auth)
	httpkit.PostBound[domain.AuthRequest](r, "/orders", maxBody, h.orders)
	httpkit.PostBound[domain.AuthRequest](r, "/products", maxBody, h.products)

	// header form: Authorization: tma <initData>, identity from the signed user only
	httpkit.Get(r, "/orders", h.ordersByHeader)
	httpkit.Get(r, "/products", h.productsByHeader)
}

type handlers struct{ svc gate.ServicePort }

// swagger:route POST /miniapp/auth Miniapp auth
// @Summary Verify init data and register the user
// @Tags miniapp
// @Accept json
// @Produce json
// @Param payload body domain.AuthRequest true "Init data"
// @Success 200 {object} domain.AuthResponse "ok"
// @Failure 401 {object} httpkit.Envelope "init data rejected"
// @Failure 503 {object} httpkit.Envelope "row store unavailable"
// @Router /miniapp/auth [post]
func (h *handlers) auth(r *stdhttp.Request, in domain.AuthRequest) (any, error) {
	p, err := h.svc.Identify(r.Context(), in.Credentials())
	if err != nil {
		return nil, err
	}
	return domain.AuthResponse{User: p}, nil
}

// swagger:route POST /miniapp/orders Miniapp orders
// @Summary Orders that mention the caller
// @Tags miniapp
// @Accept json
// @Produce json
// @Param payload body domain.AuthRequest true "Init data"
// @Success 200 {object} domain.OrdersResponse "ok"
// @Failure 401 {object} httpkit.Envelope "init data rejected"
// @Failure 503 {object} httpkit.Envelope "shop unavailable"
// @Router /miniapp/orders [post]
func (h *handlers) orders(r *stdhttp.Request, in domain.AuthRequest) (any, error) {
	os, err := h.svc.MyOrders(r.Context(), in.Credentials())
	if err != nil {
		return nil, err
	}
	return domain.OrdersResponse{Orders: os, Count: len(os)}, nil
}

// swagger:route POST /miniapp/products Miniapp products
// @Summary Products the caller owns
// @Tags miniapp
// @Accept json
// @Produce json
// @Param payload body domain.AuthRequest true "Init data"
// @Success 200 {object} domain.ProductsResponse "ok"
// @Failure 401 {object} httpkit.Envelope "init data rejected"
// @Failure 503 {object} httpkit.Envelope "row store unavailable"
// @Router /miniapp/products [post]
func (h *handlers) products(r *stdhttp.Request, in domain.AuthRequest) (any, error) {
	ps, err := h.svc.MyProducts(r.Context(), in.Credentials())
	if err != nil {
		return nil, err
	}
	return domain.ProductsResponse{Products: ps, Count: len(ps)}, nil
}

// @Summary Orders that mention the caller, init data in the Authorization header
// @Tags miniapp
// @Produce json
// @Param Authorization header string true "tma <initData>"
// @Success 200 {object} domain.OrdersResponse "ok"
// @Failure 401 {object} httpkit.Envelope "init data rejected"
// @Router /miniapp/orders [get]
func (h *handlers) ordersByHeader(r *stdhttp.Request) (any, error) {
	raw, err := httpkit.InitData(r)
	if err != nil {
		return nil, err
	}
	os, err := h.svc.MyOrders(r.Context(), gate.Credentials{InitData: raw, SignedOnly: true})
	if err != nil {
		return nil, err
	}
	return domain.OrdersResponse{Orders: os, Count: len(os)}, nil
}

// @Summary Products the caller owns, init data in the Authorization header
// @Tags miniapp
// @Produce json
// @Param Authorization header string true "tma <initData>"
// @Success 200 {object} domain.ProductsResponse "ok"
// @Failure 401 {object} httpkit.Envelope "init data rejected"
// @Router /miniapp/products [get]
func (h *handlers) productsByHeader(r *stdhttp.Request) (any, error) {
	raw, err := httpkit.InitData(r)
	if err != nil {
		return nil, err
	}
	ps, err := h.svc.MyProducts(r.Context(), gate.Credentials{InitData: raw, SignedOnly: true})
	if err != nil {
		return nil, err
	}
	return domain.ProductsResponse{Products: ps, Count: len(ps)}, nil
}
