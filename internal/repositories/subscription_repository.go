package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payflow/internal/models/db_models"
)

type ISubscriptionRepository interface {
	Create(ctx context.Context, sub *db_models.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Subscription, error)
	Update(ctx context.Context, sub *db_models.Subscription) error
	FindDue(ctx context.Context, nowUnix int64, limit int) ([]db_models.Subscription, error)
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Subscription, error) {

	var sub db_models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").Preload("Instrument").
		First(&sub, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &sub, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// FindDue selects billable subscriptions whose due date has elapsed. The
// predicate is an explicit <= against now; ordering by due date keeps the
// longest-overdue subscriptions first when the batch is capped.
func (r *SubscriptionRepository) FindDue(ctx context.Context, nowUnix int64, limit int) ([]db_models.Subscription, error) {

	var subs []db_models.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").Preload("Instrument").
		Where("status IN ? AND next_billing_date <= ?",
			[]db_models.SubscriptionStatus{db_models.SubStatusActive, db_models.SubStatusTrialing},
			nowUnix).
		Order("next_billing_date ASC").
		Limit(limit).
		Find(&subs).Error

	if err != nil {
		return nil, err
	}

	return subs, nil
}
