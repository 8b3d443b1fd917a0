package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
)

// checkout pays order through the API and returns the new sale id.
func checkout(t *testing.T, f *apiFixture, order entity.Order, body string) uuid.UUID {
	t.Helper()
	w := f.do(http.MethodPost, checkoutPath(order.ID), body)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout status = %d: %s", w.Code, w.Body.String())
	}
	var data struct {
		SaleID uuid.UUID `json:"sale_id"`
	}
	decodeData(t, decode(t, w), &data)
	return data.SaleID
}

func TestGetSale(t *testing.T) {
	f := newAPIFixture(t)
	order := f.addOrder(enum.OrderStatusServed, "118.00")
	saleID := checkout(t, f, order, `{
		"type": "boleta",
		"customer": {"doc_number": "45678912", "name": "Ana Quispe"},
		"payments": [{"method": "yape", "amount": 118, "reference": "YP-99"}]
	}`)

	w := f.do(http.MethodGet, "/api/v1/sales/"+saleID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var sale struct {
		ReceiptType   string  `json:"receipt_type"`
		Series        string  `json:"series"`
		Number        string  `json:"number"`
		ReceiptNumber string  `json:"receipt_number"`
		Status        string  `json:"status"`
		Subtotal      float64 `json:"subtotal"`
		Tax           float64 `json:"tax"`
		Total         float64 `json:"total"`
		Customer      struct {
			DocType   string `json:"doc_type"`
			DocNumber string `json:"doc_number"`
		} `json:"customer"`
		Payments []struct {
			Method    string  `json:"method"`
			Amount    float64 `json:"amount"`
			Reference string  `json:"reference"`
		} `json:"payments"`
	}
	decodeData(t, decode(t, w), &sale)

	if sale.ReceiptNumber != "B001-00000001" || sale.Series != "B001" || sale.Number != "00000001" {
		t.Errorf("numbering = %s %s %s", sale.Series, sale.Number, sale.ReceiptNumber)
	}
	if sale.ReceiptType != "boleta" || sale.Status != "paid" {
		t.Errorf("type/status = %s/%s", sale.ReceiptType, sale.Status)
	}
	if sale.Subtotal != 100 || sale.Tax != 18 || sale.Total != 118 {
		t.Errorf("amounts = %v/%v/%v, want 100/18/118", sale.Subtotal, sale.Tax, sale.Total)
	}
	if sale.Customer.DocType != "DNI" || sale.Customer.DocNumber != "45678912" {
		t.Errorf("customer = %+v", sale.Customer)
	}
	if len(sale.Payments) != 1 || sale.Payments[0].Method != "yape" || sale.Payments[0].Reference != "YP-99" {
		t.Errorf("payments = %+v", sale.Payments)
	}
}

func TestGetSale_NotFound(t *testing.T) {
	f := newAPIFixture(t)
	if w := f.do(http.MethodGet, "/api/v1/sales/"+uuid.NewString(), ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if w := f.do(http.MethodGet, "/api/v1/sales/latest", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d, want 400", w.Code)
	}
}

func TestPrintSale(t *testing.T) {
	f := newAPIFixture(t)
	order := f.addOrder(enum.OrderStatusServed, "20.00")
	saleID := checkout(t, f, order, `{"type": "boleta", "payments": [{"method": "cash", "amount": 20}]}`)
	path := "/api/v1/sales/" + saleID.String() + "/print"

	w := f.do(http.MethodPost, path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if f.printer.jobs != 1 {
		t.Errorf("print jobs = %d, want 1", f.printer.jobs)
	}

	f.printer.err = errors.New("printer offline")
	w = f.do(http.MethodPost, path, "")
	if w.Code != http.StatusOK {
		t.Fatalf("offline printer: status = %d, want 200", w.Code)
	}
	var data struct {
		Receipt struct {
			Number string `json:"number"`
		} `json:"receipt"`
		Warning string `json:"warning"`
	}
	decodeData(t, decode(t, w), &data)
	if data.Receipt.Number != "B001-00000001" {
		t.Errorf("receipt number = %q", data.Receipt.Number)
	}
	if data.Warning == "" {
		t.Error("missing warning for failed print")
	}

	if w := f.do(http.MethodPost, "/api/v1/sales/"+uuid.NewString()+"/print", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown sale: status = %d, want 404", w.Code)
	}
}

func TestPrinterStatusAndTest(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(http.MethodGet, "/api/v1/printer/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var status struct {
		Configured bool   `json:"configured"`
		Connected  bool   `json:"connected"`
		Type       string `json:"type"`
	}
	decodeData(t, decode(t, w), &status)
	if !status.Configured || !status.Connected || status.Type != "network" {
		t.Errorf("status = %+v", status)
	}

	if w := f.do(http.MethodPost, "/api/v1/printer/test", ""); w.Code != http.StatusOK {
		t.Errorf("test print: status = %d, want 200", w.Code)
	}
	if f.printer.jobs != 1 {
		t.Errorf("print jobs = %d, want 1", f.printer.jobs)
	}
}
