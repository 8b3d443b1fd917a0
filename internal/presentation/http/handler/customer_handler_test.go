package handler

import (
	"net/http"
	"testing"

	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
)

func TestSearchCustomer(t *testing.T) {
	f := newAPIFixture(t)
	f.store.AddCustomer(entity.Customer{Name: "Ana Quispe", DocType: enum.DocTypeDNI, DocNumber: "45678912"})

	tests := []struct {
		name  string
		query string
		code  int
		found bool
	}{
		{"existing", "?doc_number=45678912", http.StatusOK, true},
		{"unknown", "?doc_number=11111111", http.StatusOK, false},
		{"missing parameter", "", http.StatusUnprocessableEntity, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodGet, "/api/v1/customers/search"+tt.query, "")
			if w.Code != tt.code {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.code, w.Body.String())
			}
			if tt.code != http.StatusOK {
				return
			}
			var data struct {
				Found    bool `json:"found"`
				Customer *struct {
					Name string `json:"name"`
				} `json:"customer"`
			}
			decodeData(t, decode(t, w), &data)
			if data.Found != tt.found {
				t.Errorf("found = %v, want %v", data.Found, tt.found)
			}
			if tt.found && (data.Customer == nil || data.Customer.Name != "Ana Quispe") {
				t.Errorf("customer = %+v", data.Customer)
			}
			if !tt.found && data.Customer != nil {
				t.Errorf("customer = %+v, want null", data.Customer)
			}
		})
	}
}

func TestCreateCustomer(t *testing.T) {
	f := newAPIFixture(t)
	body := `{"doc_type": "ruc", "doc_number": "20601234567", "name": "Eventos Lima SAC", "email": "caja@eventos.pe"}`

	w := f.do(http.MethodPost, "/api/v1/customers", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var data struct {
		DocType string `json:"doc_type"`
		Email   string `json:"email"`
	}
	decodeData(t, decode(t, w), &data)
	if data.DocType != "RUC" || data.Email != "caja@eventos.pe" {
		t.Errorf("customer = %+v", data)
	}

	if w := f.do(http.MethodPost, "/api/v1/customers", body); w.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", w.Code)
	}
	if w := f.do(http.MethodPost, "/api/v1/customers", `{"doc_type": "passport"}`); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid: status = %d, want 422", w.Code)
	}
	if w := f.do(http.MethodPost, "/api/v1/customers", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("malformed: status = %d, want 400", w.Code)
	}
}
