package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a table or counter ticket that accumulates line items until checkout
type Order struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TableID   *uuid.UUID       `gorm:"type:uuid;index" json:"table_id,omitempty"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status    enum.OrderStatus `gorm:"not null;default:0;index" json:"status"`
	Total     decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Notes     *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Table    *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	User     *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ItemsTotal recomputes the order total from its line items, rounded to cents.
// The cached Total column is not consulted.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	return total.Round(2)
}

// OrderItem is a product line on an order with the price captured at order time
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Notes     *string         `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns quantity times unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ProductName returns the name of the ordered product, or a generic label
// when the product was not loaded.
func (i OrderItem) ProductName() string {
	if i.Product != nil && i.Product.Name != "" {
		return i.Product.Name
	}
	return "Product"
}
