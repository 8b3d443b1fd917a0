package request

import (
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CheckoutRequest is the body of POST /orders/:id/checkout. Field rules are
// enforced by the checkout service so that every violation is reported with
// its JSON path.
type CheckoutRequest struct {
	Type     enum.ReceiptType         `json:"type"`
	Customer *CheckoutCustomerRequest `json:"customer"`
	Payments []PaymentRequest         `json:"payments"`
}

// CheckoutCustomerRequest identifies the receipt holder
type CheckoutCustomerRequest struct {
	DocType   enum.DocType `json:"doc_type"`
	DocNumber string       `json:"doc_number"`
	Name      string       `json:"name"`
	Email     *string      `json:"email"`
	Phone     *string      `json:"phone"`
	Address   *string      `json:"address"`
}

// PaymentRequest is one tender line. Method accepts the Spanish aliases
// efectivo, tarjeta, transferencia and otro.
type PaymentRequest struct {
	Method    enum.PaymentMethod `json:"method"`
	Amount    decimal.Decimal    `json:"amount"`
	Reference *string            `json:"reference"`
}
