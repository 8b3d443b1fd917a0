package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Money renders an amount as a JSON number with exactly two decimals.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).StringFixed(2)), nil
}

// CheckoutResponse is returned when a checkout succeeds
type CheckoutResponse struct {
	SaleID        uuid.UUID `json:"sale_id"`
	ReceiptNumber string    `json:"receipt_number"`
	Location      string    `json:"location"`
}

// NewCheckoutResponse builds the checkout result for sale, pointing at its
// resource under basePath.
func NewCheckoutResponse(sale *entity.Sale, basePath string) CheckoutResponse {
	return CheckoutResponse{
		SaleID:        sale.ID,
		ReceiptNumber: sale.ReceiptNumber(),
		Location:      basePath + "/sales/" + sale.ID.String(),
	}
}

type CustomerResponse struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	DocType   enum.DocType `json:"doc_type"`
	DocNumber string       `json:"doc_number"`
	Email     *string      `json:"email,omitempty"`
	Phone     *string      `json:"phone,omitempty"`
	Address   *string      `json:"address,omitempty"`
}

func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		DocType:   c.DocType,
		DocNumber: c.DocNumber,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
	}
}

type RefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type OrderItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   Money     `json:"unit_price"`
	LineTotal   Money     `json:"line_total"`
	Notes       *string   `json:"notes,omitempty"`
}

type PaymentResponse struct {
	ID        uuid.UUID          `json:"id"`
	Method    enum.PaymentMethod `json:"method"`
	Amount    Money              `json:"amount"`
	Reference *string            `json:"reference,omitempty"`
	PaidAt    time.Time          `json:"paid_at"`
}

// OrderResponse is an order with its items; Total is recomputed from the items.
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Status    enum.OrderStatus    `json:"status"`
	Table     *RefResponse        `json:"table,omitempty"`
	User      *RefResponse        `json:"user,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	Items     []OrderItemResponse `json:"items"`
	Total     Money               `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
}

func NewOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	res := &OrderResponse{
		ID:        o.ID,
		Status:    o.Status,
		Notes:     o.Notes,
		Items:     make([]OrderItemResponse, 0, len(o.Items)),
		Total:     Money(o.ItemsTotal()),
		CreatedAt: o.CreatedAt,
	}
	if o.Table != nil {
		res.Table = &RefResponse{ID: o.Table.ID, Name: o.Table.Name}
	}
	if o.User != nil {
		res.User = &RefResponse{ID: o.User.ID, Name: o.User.Name}
	}
	for _, item := range o.Items {
		res.Items = append(res.Items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName(),
			Quantity:    item.Quantity,
			UnitPrice:   Money(item.UnitPrice),
			LineTotal:   Money(item.LineTotal()),
			Notes:       item.Notes,
		})
	}
	return res
}

// SaleResponse is the full view of an issued sale
type SaleResponse struct {
	ID            uuid.UUID         `json:"id"`
	ReceiptType   enum.ReceiptType  `json:"receipt_type"`
	Series        string            `json:"series"`
	Number        string            `json:"number"`
	ReceiptNumber string            `json:"receipt_number"`
	Status        enum.SaleStatus   `json:"status"`
	IssuedAt      time.Time         `json:"issued_at"`
	Subtotal      Money             `json:"subtotal"`
	Tax           Money             `json:"tax"`
	Total         Money             `json:"total"`
	Customer      *CustomerResponse `json:"customer"`
	Order         *OrderResponse    `json:"order,omitempty"`
	Payments      []PaymentResponse `json:"payments"`
}

func NewSaleResponse(s *entity.Sale) *SaleResponse {
	res := &SaleResponse{
		ID:            s.ID,
		ReceiptType:   s.ReceiptType,
		Series:        s.Series,
		Number:        s.PaddedNumber(),
		ReceiptNumber: s.ReceiptNumber(),
		Status:        s.Status,
		IssuedAt:      s.IssuedAt,
		Subtotal:      Money(s.Subtotal),
		Tax:           Money(s.Tax),
		Total:         Money(s.Total),
		Customer:      NewCustomerResponse(s.Customer),
		Order:         NewOrderResponse(s.Order),
		Payments:      []PaymentResponse{},
	}
	if s.Order != nil {
		for _, p := range s.Order.Payments {
			res.Payments = append(res.Payments, PaymentResponse{
				ID:        p.ID,
				Method:    p.Method,
				Amount:    Money(p.Amount),
				Reference: p.Reference,
				PaidAt:    p.PaidAt,
			})
		}
	}
	return res
}
