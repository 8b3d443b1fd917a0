package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// DefaultCustomerName is used when a customer is registered without a name.
const DefaultCustomerName = "Cliente"

// Customer is a receipt holder identified by a national document number
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	DocType   enum.DocType   `gorm:"size:3;not null" json:"doc_type"`
	DocNumber string         `gorm:"size:20;not null;uniqueIndex" json:"doc_number"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"size:255" json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sales []Sale `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
