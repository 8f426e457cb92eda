package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payflow/internal/models/db_models"
)

type IInstrumentRepository interface {
	Create(ctx context.Context, instrument *db_models.PaymentInstrument) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.PaymentInstrument, error)
	GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]db_models.PaymentInstrument, error)
	Update(ctx context.Context, instrument *db_models.PaymentInstrument) error
}

type InstrumentRepository struct {
	db *gorm.DB
}

func NewInstrumentRepository(db *gorm.DB) IInstrumentRepository {
	return &InstrumentRepository{db: db}
}

func (r *InstrumentRepository) Create(ctx context.Context, instrument *db_models.PaymentInstrument) error {
	return r.db.WithContext(ctx).Create(instrument).Error
}

func (r *InstrumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PaymentInstrument, error) {

	var instrument db_models.PaymentInstrument
	err := r.db.WithContext(ctx).First(&instrument, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &instrument, nil
}

func (r *InstrumentRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]db_models.PaymentInstrument, error) {

	var instruments []db_models.PaymentInstrument
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&instruments).Error

	if err != nil {
		return nil, err
	}

	return instruments, nil
}

func (r *InstrumentRepository) Update(ctx context.Context, instrument *db_models.PaymentInstrument) error {
	return r.db.WithContext(ctx).Save(instrument).Error
}
