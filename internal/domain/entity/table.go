package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Table represents a dining table in the restaurant floor
type Table struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name      string           `gorm:"size:50;not null" json:"name"`
	Seats     int              `gorm:"default:0" json:"seats"`
	Status    enum.TableStatus `gorm:"not null;default:0" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Table) TableName() string {
	return "tables"
}
