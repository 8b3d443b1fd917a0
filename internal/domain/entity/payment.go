package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is a single tender line recorded against an order at checkout
type Payment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Method    enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Amount    decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reference *string            `gorm:"size:100" json:"reference,omitempty"`
	PaidAt    time.Time          `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// SumPayments adds up the payment amounts, rounded to cents.
func SumPayments(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum.Round(2)
}
