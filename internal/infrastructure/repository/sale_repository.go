package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/restaurant-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/restaurant-pos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return translateError(conn(ctx, r.db).Create(sale).Error)
}

func (r *saleRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).
		Preload("Customer", WithDeleted).
		Preload("Order", WithDeleted).
		Preload("Order.Table", WithDeleted).
		Preload("Order.User", WithDeleted).
		Preload("Order.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Order.Items.Product", WithDeleted).
		Preload("Order.Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC, created_at ASC")
		}).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// maxIssuedNumber counts soft-deleted sales too: their numbers stay taken.
func maxIssuedNumber(db *gorm.DB, series string) (uint, error) {
	var n uint
	err := db.Model(&entity.Sale{}).
		Scopes(WithDeleted, InSeries(series)).
		Select("COALESCE(MAX(number), 0)").
		Scan(&n).Error
	return n, err
}

type receiptSequenceRepository struct {
	db *gorm.DB
}

// NewReceiptSequenceRepository creates a repository allocating receipt numbers
func NewReceiptSequenceRepository(db *gorm.DB) domainRepo.ReceiptSequenceRepository {
	return &receiptSequenceRepository{db: db}
}

func (r *receiptSequenceRepository) Next(ctx context.Context, series string) (uint, error) {
	db := conn(ctx, r.db)

	// First use of a series creates its counter row. Concurrent creators
	// block on the primary key until the winner commits.
	seed := entity.ReceiptSequence{Series: series}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return 0, err
	}

	var seq entity.ReceiptSequence
	if err := db.Scopes(ForUpdate).First(&seq, "series = ?", series).Error; err != nil {
		return 0, err
	}

	issued, err := maxIssuedNumber(db, series)
	if err != nil {
		return 0, err
	}

	next := max(seq.LastNumber, issued) + 1
	err = db.Model(&entity.ReceiptSequence{}).
		Where("series = ?", series).
		Update("last_number", next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
