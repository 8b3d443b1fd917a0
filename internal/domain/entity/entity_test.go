package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderItemsTotal(t *testing.T) {
	o := Order{
		Total: decimal.RequireFromString("999.99"),
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")},
			{Quantity: 3, UnitPrice: decimal.RequireFromString("3.333")},
			{Quantity: 1, UnitPrice: decimal.RequireFromString("0.10")},
		},
	}
	// 25.00 + 9.999 + 0.10 = 35.099, rounded to cents; the cached Total is ignored
	if got := o.ItemsTotal(); !got.Equal(decimal.RequireFromString("35.10")) {
		t.Errorf("ItemsTotal() = %s, want 35.10", got)
	}

	if got := (&Order{}).ItemsTotal(); !got.IsZero() {
		t.Errorf("empty order total = %s, want 0", got)
	}
}

func TestOrderItemProductName(t *testing.T) {
	if got := (OrderItem{}).ProductName(); got != "Product" {
		t.Errorf("ProductName() = %q", got)
	}
	item := OrderItem{Product: &Product{Name: "Ceviche mixto"}}
	if got := item.ProductName(); got != "Ceviche mixto" {
		t.Errorf("ProductName() = %q", got)
	}
}

func TestSaleReceiptNumber(t *testing.T) {
	tests := []struct {
		series string
		number uint
		want   string
	}{
		{"B001", 1, "B001-00000001"},
		{"F001", 42, "F001-00000042"},
		{"B001", 12345678, "B001-12345678"},
	}
	for _, tt := range tests {
		s := Sale{Series: tt.series, Number: tt.number}
		if got := s.ReceiptNumber(); got != tt.want {
			t.Errorf("ReceiptNumber() = %q, want %q", got, tt.want)
		}
	}
}

func TestIdempotencyKey(t *testing.T) {
	k := IdempotencyKey{
		Endpoint:    "POST /api/v1/orders/7d5c/checkout",
		RequestHash: "abc",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	if k.IsExpired() {
		t.Error("key should not be expired")
	}
	if !k.Matches("POST /api/v1/orders/7d5c/checkout", "abc") {
		t.Error("same request should match")
	}
	if k.Matches("POST /api/v1/orders/7d5c/checkout", "def") {
		t.Error("different body should not match")
	}
	if k.Matches("PATCH /api/v1/orders/7d5c/cancel", "abc") {
		t.Error("different endpoint should not match")
	}
	if k.Matches("POST /api/v1/orders/91ab/checkout", "abc") {
		t.Error("different order should not match")
	}

	k.ExpiresAt = time.Now().Add(-time.Second)
	if !k.IsExpired() {
		t.Error("key should be expired")
	}
}
