package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderFreeText(t *testing.T) {
	o := Order{
		ID:       "o1",
		Customer: Customer{Name: "A", Email: "e", Phone: "p", Telegram: "@t"},
		Address:  "addr",
		Comment:  "c",
		Items:    []OrderItem{{ProductID: "P1", Title: "not free text"}},
	}
	want := []string{"A", "e", "p", "@t", "addr", "c"}
	if diff := cmp.Diff(want, o.FreeText()); diff != "" {
		t.Fatalf("FreeText (-want +got):\n%s", diff)
	}
}
