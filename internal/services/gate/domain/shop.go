package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the contact block the buyer filled in at checkout
type Customer struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Telegram string `json:"telegram,omitempty"`
}

// OrderItem is one line of an order
type OrderItem struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku,omitempty"`
	Title     string          `json:"title,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is a shop order as returned by the orders listing
type Order struct {
	ID        string          `json:"id"`
	Number    string          `json:"number,omitempty"`
	Status    string          `json:"status,omitempty"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency,omitempty"`
	Customer  Customer        `json:"customer"`
	Address   string          `json:"shipping_address,omitempty"`
	Comment   string          `json:"comment,omitempty"`
	Items     []OrderItem     `json:"items,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

// FreeText returns the customer typed fields used for identity matching
func (o Order) FreeText() []string {
	return []string{
		o.Customer.Name,
		o.Customer.Email,
		o.Customer.Phone,
		o.Customer.Telegram,
		o.Address,
		o.Comment,
	}
}

// Product is the detail view of a catalog item
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	Stock       int             `json:"stock"`
	URL         string          `json:"url,omitempty"`
	Images      []string        `json:"images,omitempty"`
}
