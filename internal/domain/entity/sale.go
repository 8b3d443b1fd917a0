package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is the fiscal record issued when an order is paid
type Sale struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	CustomerID  *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	ReceiptType enum.ReceiptType `gorm:"size:10;not null" json:"receipt_type"`
	Series      string           `gorm:"type:char(4);not null;uniqueIndex:idx_sales_series_number,priority:1" json:"series"`
	Number      uint             `gorm:"not null;uniqueIndex:idx_sales_series_number,priority:2" json:"number"`
	Subtotal    decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax         decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"tax"`
	Total       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"total"`
	Status      enum.SaleStatus  `gorm:"size:20;not null;default:'paid'" json:"status"`
	IssuedAt    time.Time        `gorm:"not null;index" json:"issued_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Order    *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// PaddedNumber returns the receipt number left-padded to eight digits.
func (s *Sale) PaddedNumber() string {
	return fmt.Sprintf("%08d", s.Number)
}

// ReceiptNumber returns the printed receipt identifier, e.g. B001-00000042.
func (s *Sale) ReceiptNumber() string {
	return s.Series + "-" + s.PaddedNumber()
}

// ReceiptSequence holds the last number consumed for a receipt series.
// The row is locked while a sale is being numbered.
type ReceiptSequence struct {
	Series     string    `gorm:"type:char(4);primaryKey"`
	LastNumber uint      `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

func (ReceiptSequence) TableName() string {
	return "receipt_sequences"
}
