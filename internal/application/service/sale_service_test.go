package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
)

func TestSaleService_GetSale(t *testing.T) {
	f := newCheckoutFixture(t)
	saleID := paidSale(t, f)
	svc := NewSaleService(f.store.SaleRepository())

	sale, err := svc.GetSale(context.Background(), saleID)
	if err != nil {
		t.Fatalf("GetSale() error = %v", err)
	}
	if sale.Customer == nil || sale.Customer.DocNumber != "20509876543" {
		t.Errorf("customer not loaded: %+v", sale.Customer)
	}
	if sale.Order == nil || len(sale.Order.Items) != 2 || len(sale.Order.Payments) != 2 {
		t.Fatalf("order details not loaded: %+v", sale.Order)
	}
	if sale.PaddedNumber() != "00000001" {
		t.Errorf("PaddedNumber() = %q", sale.PaddedNumber())
	}

	_, err = svc.GetSale(context.Background(), uuid.New())
	if code := apperror.GetAppError(err).Code; code != http.StatusNotFound {
		t.Errorf("missing sale code = %d, want 404", code)
	}
}
