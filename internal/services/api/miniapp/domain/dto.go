// Package domain holds DTOs for the miniapp http contract
package domain

import gate "minishop/internal/services/gate/domain"

// AuthRequest is what the Mini App posts on every call
// initData is the raw signed query string, initDataUnsafe is the client parsed copy
type AuthRequest struct {
	InitData       string     `json:"initData"       validate:"max=8192" example:"query_id=AAH...&user=%7B%22id%22%3A1%7D&auth_date=1735689600&hash=9f8e..."` //nolint:lll
	InitDataUnsafe UnsafeData `json:"initDataUnsafe"`
}

// UnsafeData is the client side decoding of initData, only user is read
type UnsafeData struct {
	User *UnsafeUser `json:"user,omitempty"`
}

// UnsafeUser is the Telegram user as the client reports it
type UnsafeUser struct {
	ID        int64  `json:"id"                   validate:"gte=0" example:"5550001"`
	Username  string `json:"username,omitempty"   validate:"omitempty,max=64,handle" example:"alice"`
	FirstName string `json:"first_name,omitempty" validate:"max=256" example:"Alice"`
	LastName  string `json:"last_name,omitempty"  validate:"max=256" example:"Liddell"`
}

// Credentials converts the request for the gate
func (a AuthRequest) Credentials() gate.Credentials {
	c := gate.Credentials{InitData: a.InitData}
	if u := a.InitDataUnsafe.User; u != nil {
		c.Unsafe = gate.ClientUser{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
	}
	return c
}

// AuthResponse carries the stored profile
type AuthResponse struct {
	User gate.Profile `json:"user"`
}

// OrdersResponse lists the caller's orders, empty when none match
type OrdersResponse struct {
	Orders []gate.Order `json:"orders"`
	Count  int          `json:"count" example:"2"`
}

// ProductsResponse lists the caller's products in sheet order
type ProductsResponse struct {
	Products []gate.OwnedProduct `json:"products"`
	Count    int                 `json:"count" example:"1"`
}
