package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payflow/internal/models/db_models"
)

type ISubscriptionPaymentRepository interface {
	Create(ctx context.Context, payment *db_models.SubscriptionPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPayment, error)
	Update(ctx context.Context, payment *db_models.SubscriptionPayment) error
	FindOpenByCycle(ctx context.Context, subscriptionID uuid.UUID, cycleNumber int) (*db_models.SubscriptionPayment, error)
	FindRetryable(ctx context.Context, nowUnix int64, limit int) ([]db_models.SubscriptionPayment, error)
}

type SubscriptionPaymentRepository struct {
	db *gorm.DB
}

func NewSubscriptionPaymentRepository(db *gorm.DB) ISubscriptionPaymentRepository {
	return &SubscriptionPaymentRepository{db: db}
}

func (r *SubscriptionPaymentRepository) Create(ctx context.Context, payment *db_models.SubscriptionPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *SubscriptionPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPayment, error) {

	var payment db_models.SubscriptionPayment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &payment, nil
}

func (r *SubscriptionPaymentRepository) Update(ctx context.Context, payment *db_models.SubscriptionPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// FindOpenByCycle returns the unsettled attempt for one billing cycle, if any.
// At most one open payment exists per cycle; the due sweep checks it before
// admitting a subscription so in-cycle replays stay with the retry sweep.
func (r *SubscriptionPaymentRepository) FindOpenByCycle(ctx context.Context, subscriptionID uuid.UUID, cycleNumber int) (*db_models.SubscriptionPayment, error) {

	var payment db_models.SubscriptionPayment
	err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND cycle_number = ? AND status IN ?",
			subscriptionID, cycleNumber,
			[]db_models.PaymentStatus{db_models.PaymentStatusPending, db_models.PaymentStatusRetrying}).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &payment, nil
}

// FindRetryable selects retrying attempts with budget left whose backoff
// window has elapsed. Terminal FAILED rows never match: applyFailure clears
// their next_retry_at.
func (r *SubscriptionPaymentRepository) FindRetryable(ctx context.Context, nowUnix int64, limit int) ([]db_models.SubscriptionPayment, error) {

	var payments []db_models.SubscriptionPayment
	err := r.db.WithContext(ctx).
		Where("status = ? AND retry_count < max_retry_attempts AND next_retry_at IS NOT NULL AND next_retry_at <= ?",
			db_models.PaymentStatusRetrying,
			nowUnix).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}
