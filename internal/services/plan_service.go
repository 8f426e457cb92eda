package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"payflow/internal/models/db_models"
	"payflow/internal/models/request_models"
	"payflow/internal/models/response_models"
	"payflow/internal/repositories"
	"payflow/pkg/utils"
)

type PlanServiceInterface interface {
	CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (*response_models.SubscriptionPlanResponse, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*response_models.SubscriptionPlanResponse, error)
	GetAllPlans(ctx context.Context) ([]response_models.SubscriptionPlanResponse, error)
	DeactivatePlan(ctx context.Context, id uuid.UUID) error
}

func NewPlanService(planRepo repositories.IPlanRepository, logger *zap.Logger) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
		logger:   logger,
	}
}

type PlanService struct {
	planRepo repositories.IPlanRepository
	logger   *zap.Logger
}

func (p *PlanService) CreatePlan(ctx context.Context, req request_models.CreatePlanRequest) (*response_models.SubscriptionPlanResponse, error) {

	existing, err := p.planRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrDuplicateName
	}

	intervalCount := req.IntervalCount
	if intervalCount == 0 {
		intervalCount = 1
	}

	plan := &db_models.SubscriptionPlan{
		Name:             req.Name,
		Description:      req.Description,
		AmountMinor:      req.AmountMinor,
		Currency:         req.Currency,
		Interval:         db_models.BillingInterval(req.Interval),
		IntervalCount:    intervalCount,
		TrialDays:        req.TrialDays,
		MaxBillingCycles: req.MaxCycles,
		IsActive:         true,
	}
	if len(req.Features) > 0 {
		if raw, err := json.Marshal(req.Features); err == nil {
			plan.Features = datatypes.JSON(raw)
		}
	}

	if err := p.planRepo.Create(ctx, plan); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.ErrDuplicateName
		}
		return nil, fmt.Errorf("%w: create plan: %v", utils.ErrDatabaseError, err)
	}

	p.logger.Info("plan created",
		zap.String("plan_id", plan.ID.String()), zap.String("name", plan.Name))

	return toPlanResponse(plan), nil
}

func (p *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*response_models.SubscriptionPlanResponse, error) {

	plan, err := p.planRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	return toPlanResponse(plan), nil
}

func (p *PlanService) GetAllPlans(ctx context.Context) ([]response_models.SubscriptionPlanResponse, error) {

	plans, err := p.planRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	result := make([]response_models.SubscriptionPlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, *toPlanResponse(&plans[i]))
	}

	return result, nil
}

// DeactivatePlan stops new subscriptions on the plan. Existing subscriptions
// keep billing; plan definitions are immutable otherwise.
func (p *PlanService) DeactivatePlan(ctx context.Context, id uuid.UUID) error {

	plan, err := p.planRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return utils.ErrPlanNotFound
	}

	plan.IsActive = false
	if err := p.planRepo.Update(ctx, plan); err != nil {
		return fmt.Errorf("%w: deactivate plan: %v", utils.ErrDatabaseError, err)
	}

	return nil
}

func toPlanResponse(plan *db_models.SubscriptionPlan) *response_models.SubscriptionPlanResponse {
	return &response_models.SubscriptionPlanResponse{
		ID:               plan.ID,
		Name:             plan.Name,
		Description:      plan.Description,
		AmountMinor:      plan.AmountMinor,
		Currency:         plan.Currency,
		Interval:         string(plan.Interval),
		IntervalCount:    plan.IntervalCount,
		TrialDays:        plan.TrialDays,
		MaxBillingCycles: plan.MaxBillingCycles,
		IsActive:         plan.IsActive,
	}
}
