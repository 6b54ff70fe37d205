// Package ownership resolves which products an identity may manage
package ownership

import (
	"strings"

	"minishop/internal/core/identity"

	"github.com/samber/lo"
)

// Column positions of an ownership row
const (
	ColSKU       = 0
	ColProductID = 1
	ColOwner     = 2
	ColNotes     = 3
)

// Link is one product the identity is authorized for
type Link struct {
	SKU       string `json:"sku"`
	ProductID string `json:"product_id"`
	Notes     string `json:"notes,omitempty"`
}

// Resolve returns the links whose owner column equals identity, in row order
// rows missing the owner column never match. The result is never nil
func Resolve(who string, rows [][]string) []Link {
	if identity.Normalize(who) == "" {
		return []Link{}
	}
	return lo.FilterMap(rows, func(row []string, _ int) (Link, bool) {
		if len(row) <= ColOwner {
			return Link{}, false
		}
		if !identity.Equal(who, row[ColOwner]) {
			return Link{}, false
		}
		l := Link{
			SKU:       strings.TrimSpace(row[ColSKU]),
			ProductID: strings.TrimSpace(row[ColProductID]),
		}
		if len(row) > ColNotes {
			l.Notes = strings.TrimSpace(row[ColNotes])
		}
		return l, true
	})
}
