// Package domain holds the gate types shared by the service, its adapters and transports
package domain

import "minishop/internal/core/ownership"

// AuthMode decides whether init data signatures are checked
type AuthMode string

const (
	// AuthEnforced verifies every request, the default
	AuthEnforced AuthMode = "enforced"

	// AuthBypassed skips verification, for local development only
	AuthBypassed AuthMode = "bypassed"
)

// IdentitySource picks which user object the identity is read from
type IdentitySource string

const (
	// IdentitySigned reads the user field inside the signed init data
	IdentitySigned IdentitySource = "signed"

	// IdentityClient reads the client supplied initDataUnsafe.user
	IdentityClient IdentitySource = "client"
)

// KeyScheme selects how the HMAC key is derived from the bot token
type KeyScheme string

const (
	// KeySHA256 keys the HMAC with sha256(token)
	KeySHA256 KeyScheme = "sha256"

	// KeyWebApp keys the HMAC with HMAC("WebAppData", token)
	KeyWebApp KeyScheme = "webapp"
)

// ClientUser is the user object a Mini App sends next to the init data
type ClientUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Credentials are what every gate operation receives from the transport
type Credentials struct {
	// InitData is the raw query string signed by Telegram
	InitData string

	// Unsafe is the client asserted user, not covered by the signature
	Unsafe ClientUser

	// SignedOnly reads the caller from the signed user whatever the configured source,
	// set by transports that carry no client user
	SignedOnly bool
}

// Profile is the stored user row as returned by Identify
type Profile struct {
	ID        int64  `json:"id" example:"5550001"`
	Username  string `json:"username,omitempty" example:"alice"`
	FirstName string `json:"first_name,omitempty" example:"Alice"`
	LastName  string `json:"last_name,omitempty" example:"Liddell"`
	CreatedAt string `json:"created_at" example:"2026-01-02T15:04:05Z"`
	UpdatedAt string `json:"updated_at" example:"2026-01-02T15:04:05Z"`
	Created   bool   `json:"created" example:"true"`
}

// Link is an ownership row resolved for the caller
type Link = ownership.Link

// OwnedProduct is one product the caller manages with its shop details
type OwnedProduct struct {
	Link
	Product Product `json:"product"`
}

// User row columns in the users sheet
const (
	UserColID        = 0
	UserColUsername  = 1
	UserColFirstName = 2
	UserColLastName  = 3
	UserColCreatedAt = 6
	UserColUpdatedAt = 7
	UserRowWidth     = 8
)
