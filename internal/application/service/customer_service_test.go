package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/sangkips/restaurant-pos/internal/infrastructure/repository/memory"
	"github.com/sangkips/restaurant-pos/pkg/apperror"
)

func TestCustomerService_SearchByDocNumber(t *testing.T) {
	store := memory.New()
	known := store.AddCustomer(entity.Customer{Name: "Ana Torres", DocType: enum.DocTypeDNI, DocNumber: "40112233"})
	svc := NewCustomerService(store.CustomerRepository())

	tests := []struct {
		name      string
		docNumber string
		wantFound bool
		wantErr   bool
	}{
		{"found", "40112233", true, false},
		{"found after trim", " 40112233 ", true, false},
		{"missing", "99999999", false, false},
		{"empty", "  ", false, true},
		{"too long", "123456789012345678901", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.SearchByDocNumber(context.Background(), tt.docNumber)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrValidation) {
					t.Fatalf("SearchByDocNumber() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SearchByDocNumber() error = %v", err)
			}
			if res.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", res.Found, tt.wantFound)
			}
			if tt.wantFound && res.Customer.ID != known.ID {
				t.Errorf("Customer.ID = %v, want %v", res.Customer.ID, known.ID)
			}
			if !tt.wantFound && res.Customer != nil {
				t.Errorf("Customer = %+v, want nil", res.Customer)
			}
		})
	}
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	store := memory.New()
	svc := NewCustomerService(store.CustomerRepository())
	ctx := context.Background()

	c, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		DocType:   enum.DocTypeRUC,
		DocNumber: "20100070970",
		Name:      " Supermercados Peruanos SA ",
		Email:     "compras@example.com",
	})
	if err != nil {
		t.Fatalf("CreateCustomer() error = %v", err)
	}
	if c.Name != "Supermercados Peruanos SA" {
		t.Errorf("Name = %q", c.Name)
	}
	if c.Email == nil || *c.Email != "compras@example.com" {
		t.Errorf("Email = %v", c.Email)
	}
	if c.Phone != nil {
		t.Errorf("Phone = %v, want nil", c.Phone)
	}

	_, err = svc.CreateCustomer(ctx, &CreateCustomerInput{
		DocType:   enum.DocTypeRUC,
		DocNumber: "20100070970",
		Name:      "Duplicado",
	})
	if got := apperror.GetAppError(err).Code; got != http.StatusConflict {
		t.Errorf("duplicate code = %d, want 409 (err = %v)", got, err)
	}
	if n := len(store.Customers()); n != 1 {
		t.Errorf("stored %d customers, want 1", n)
	}
}

func TestCustomerService_CreateCustomerValidation(t *testing.T) {
	svc := NewCustomerService(memory.New().CustomerRepository())

	tests := []struct {
		name      string
		input     CreateCustomerInput
		wantField string
	}{
		{"missing doc type", CreateCustomerInput{DocNumber: "40112233", Name: "A"}, "doc_type"},
		{"bad doc type", CreateCustomerInput{DocType: "CE", DocNumber: "40112233", Name: "A"}, "doc_type"},
		{"missing doc number", CreateCustomerInput{DocType: enum.DocTypeDNI, Name: "A"}, "doc_number"},
		{"missing name", CreateCustomerInput{DocType: enum.DocTypeDNI, DocNumber: "40112233"}, "name"},
		{"bad email", CreateCustomerInput{DocType: enum.DocTypeDNI, DocNumber: "40112233", Name: "A", Email: "nope"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			_, err := svc.CreateCustomer(context.Background(), &in)
			appErr := apperror.GetAppError(err)
			if appErr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("code = %d, want 422 (err = %v)", appErr.Code, err)
			}
			for _, fe := range appErr.Errors {
				if fe.Field == tt.wantField {
					return
				}
			}
			t.Errorf("field errors = %+v, want one for %q", appErr.Errors, tt.wantField)
		})
	}
}
