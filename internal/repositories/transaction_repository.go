package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payflow/internal/models/db_models"
)

type ITransactionRepository interface {
	Create(ctx context.Context, txn *db_models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*db_models.Transaction, error)
	Update(ctx context.Context, txn *db_models.Transaction) error
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) ITransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {

	var txn db_models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &txn, nil
}

// GetByIDForUpdate locks the row for the duration of the enclosing unit, so
// concurrent refunds against the same parent serialize on the balance check.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {

	var txn db_models.Transaction
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM transactions WHERE id = ? AND deleted_at IS NULL FOR UPDATE", id).
		Scan(&txn).Error

	if err != nil {
		return nil, err
	}
	if txn.ID == uuid.Nil {
		return nil, nil
	}

	return &txn, nil
}

func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (*db_models.Transaction, error) {

	var txn db_models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "idempotency_key = ?", key).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &txn, nil
}

func (r *TransactionRepository) Update(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}
