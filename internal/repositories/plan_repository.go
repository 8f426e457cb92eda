package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"payflow/internal/models/db_models"
)

type IPlanRepository interface {
	Create(ctx context.Context, plan *db_models.SubscriptionPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPlan, error)
	GetByName(ctx context.Context, name string) (*db_models.SubscriptionPlan, error)
	GetAll(ctx context.Context) ([]db_models.SubscriptionPlan, error)
	Update(ctx context.Context, plan *db_models.SubscriptionPlan) error
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, plan *db_models.SubscriptionPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPlan, error) {

	var plan db_models.SubscriptionPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (r *PlanRepository) GetByName(ctx context.Context, name string) (*db_models.SubscriptionPlan, error) {

	var plan db_models.SubscriptionPlan
	err := r.db.WithContext(ctx).First(&plan, "name = ?", name).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (r *PlanRepository) GetAll(ctx context.Context) ([]db_models.SubscriptionPlan, error) {

	var plans []db_models.SubscriptionPlan
	err := r.db.WithContext(ctx).Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *PlanRepository) Update(ctx context.Context, plan *db_models.SubscriptionPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}
