package domain

import "context"

// RowStore is a sheet of string rows
type RowStore interface {
	Read(ctx context.Context, sheet string) ([][]string, error)
	Append(ctx context.Context, sheet string, row []string) error
	UpdateRow(ctx context.Context, sheet string, index int, row []string) error
}

// Shop is the read side of the storefront API
type Shop interface {
	ListOrders(ctx context.Context) ([]Order, error)
	// GetProduct returns nil, nil when the product does not exist
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

// Pinger reports whether a collaborator is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// ServicePort is implemented by the gate service
type ServicePort interface {
	Identify(ctx context.Context, c Credentials) (Profile, error)
	MyOrders(ctx context.Context, c Credentials) ([]Order, error)
	MyProducts(ctx context.Context, c Credentials) ([]OwnedProduct, error)
}
