package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"payflow/internal/gateway"
	"payflow/internal/models/db_models"
	"payflow/internal/models/request_models"
	"payflow/internal/models/response_models"
	"payflow/internal/repositories"
	"payflow/pkg/utils"
)

type SubscriptionServiceInterface interface {
	CreateSubscription(ctx context.Context, req request_models.CreateSubscriptionRequest) (*response_models.SubscriptionResponse, error)
	UpdateSubscription(ctx context.Context, id uuid.UUID, req request_models.UpdateSubscriptionRequest) (*response_models.SubscriptionResponse, error)
	CancelSubscription(ctx context.Context, id uuid.UUID, req request_models.CancelSubscriptionRequest) (*response_models.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id uuid.UUID) (*response_models.SubscriptionResponse, error)
}

func NewSubscriptionService(
	txManager repositories.TxManager,
	adapter gateway.Adapter,
	logger *zap.Logger,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		txManager: txManager,
		adapter:   adapter,
		logger:    logger,
	}
}

type SubscriptionService struct {
	txManager repositories.TxManager
	adapter   gateway.Adapter
	logger    *zap.Logger
}

// CreateSubscription validates the plan and instrument, computes trial/period
// boundaries, and registers the recurring mandate with the gateway — all in
// one atomic unit, so a failed registration leaves no local record behind.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, req request_models.CreateSubscriptionRequest) (*response_models.SubscriptionResponse, error) {

	var resp *response_models.SubscriptionResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		plan, err := repos.Plans.GetByID(ctx, req.PlanID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if plan == nil {
			return utils.ErrPlanNotFound
		}
		if !plan.IsActive {
			return utils.NewValidationError("plan %s is no longer available", plan.Name)
		}

		instrument, err := repos.Instruments.GetByID(ctx, req.InstrumentID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if instrument == nil {
			return utils.ErrInstrumentNotFound
		}
		if instrument.CustomerID != req.CustomerID {
			return utils.NewValidationError("instrument does not belong to this customer")
		}
		if !instrument.IsActive {
			return utils.NewValidationError("instrument is not active")
		}

		now := time.Now().UTC()
		sub := &db_models.Subscription{
			CustomerID:   req.CustomerID,
			PlanID:       plan.ID,
			InstrumentID: instrument.ID,
		}

		// The mandate's first charge date is the first real billing date, so
		// the gateway never schedules anything inside a trial window.
		billingStart := now
		if plan.TrialDays > 0 {
			trialStart := now.Unix()
			trialEnd := now.AddDate(0, 0, plan.TrialDays).Unix()
			sub.Status = db_models.SubStatusTrialing
			sub.TrialStart = &trialStart
			sub.TrialEnd = &trialEnd
			sub.CurrentPeriodStart = trialStart
			sub.CurrentPeriodEnd = trialEnd
			sub.NextBillingDate = trialEnd
			billingStart = time.Unix(trialEnd, 0).UTC()
		} else {
			start, end := periodBounds(now, plan)
			sub.Status = db_models.SubStatusActive
			sub.CurrentPeriodStart = start
			sub.CurrentPeriodEnd = end
			sub.NextBillingDate = start // first charge is due immediately
		}

		if len(req.Metadata) > 0 {
			if raw, err := json.Marshal(req.Metadata); err == nil {
				sub.Metadata = datatypes.JSON(raw)
			}
		}

		mandateRef, err := s.adapter.CreateRecurringMandate(ctx, gateway.MandateRequest{
			PlanName:         plan.Name,
			AmountMinor:      plan.AmountMinor,
			Currency:         plan.Currency,
			Interval:         string(plan.Interval),
			IntervalCount:    plan.IntervalCount,
			InstrumentToken:  instrument.Token,
			StartDate:        billingStart,
			TotalOccurrences: plan.MaxBillingCycles,
		})
		if err != nil {
			return err
		}
		sub.GatewayMandateRef = mandateRef

		if err := repos.Subscriptions.Create(ctx, sub); err != nil {
			return fmt.Errorf("%w: create subscription: %v", utils.ErrDatabaseError, err)
		}

		s.logger.Info("subscription created",
			zap.String("subscription_id", sub.ID.String()),
			zap.String("plan", plan.Name),
			zap.String("status", string(sub.Status)))

		resp = toSubscriptionResponse(sub)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *SubscriptionService) UpdateSubscription(ctx context.Context, id uuid.UUID, req request_models.UpdateSubscriptionRequest) (*response_models.SubscriptionResponse, error) {

	var resp *response_models.SubscriptionResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		sub, err := repos.Subscriptions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if sub == nil {
			return utils.ErrSubscriptionNotFound
		}

		if req.InstrumentID != nil {
			instrument, err := repos.Instruments.GetByID(ctx, *req.InstrumentID)
			if err != nil {
				return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
			}
			if instrument == nil {
				return utils.ErrInstrumentNotFound
			}
			if instrument.CustomerID != sub.CustomerID {
				return utils.NewValidationError("instrument does not belong to this customer")
			}
			if !instrument.IsActive {
				return utils.NewValidationError("instrument is not active")
			}
			sub.InstrumentID = instrument.ID
		}

		if len(req.Metadata) > 0 {
			sub.Metadata = mergeMetadata(sub.Metadata, req.Metadata)
		}

		if err := repos.Subscriptions.Update(ctx, sub); err != nil {
			return fmt.Errorf("%w: update subscription: %v", utils.ErrDatabaseError, err)
		}

		resp = toSubscriptionResponse(sub)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CancelSubscription deregisters the gateway mandate and closes the
// subscription, immediately or at the end of the paid period.
func (s *SubscriptionService) CancelSubscription(ctx context.Context, id uuid.UUID, req request_models.CancelSubscriptionRequest) (*response_models.SubscriptionResponse, error) {

	var resp *response_models.SubscriptionResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		sub, err := repos.Subscriptions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if sub == nil {
			return utils.ErrSubscriptionNotFound
		}
		if sub.Status == db_models.SubStatusCancelled {
			return utils.NewValidationError("subscription is already cancelled")
		}

		if err := s.adapter.CancelRecurringMandate(ctx, sub.GatewayMandateRef); err != nil {
			return err
		}

		now := time.Now().Unix()
		sub.Status = db_models.SubStatusCancelled
		sub.CancelledAt = &now
		if req.Immediate {
			sub.EndedAt = &now
		} else {
			periodEnd := sub.CurrentPeriodEnd
			sub.EndedAt = &periodEnd
			sub.CancelAtPeriodEnd = true
		}

		if req.Reason != "" {
			sub.Metadata = mergeMetadata(sub.Metadata, map[string]string{
				"cancellation_reason": req.Reason,
			})
		}

		if err := repos.Subscriptions.Update(ctx, sub); err != nil {
			return fmt.Errorf("%w: cancel subscription: %v", utils.ErrDatabaseError, err)
		}

		s.logger.Info("subscription cancelled",
			zap.String("subscription_id", sub.ID.String()),
			zap.Bool("immediate", req.Immediate))

		resp = toSubscriptionResponse(sub)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*response_models.SubscriptionResponse, error) {

	var resp *response_models.SubscriptionResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		sub, err := repos.Subscriptions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if sub == nil {
			return utils.ErrSubscriptionNotFound
		}
		resp = toSubscriptionResponse(sub)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func mergeMetadata(existing datatypes.JSON, updates map[string]string) datatypes.JSON {
	merged := map[string]string{}
	if len(existing) > 0 {
		_ = json.Unmarshal(existing, &merged)
	}
	for k, v := range updates {
		merged[k] = v
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return existing
	}
	return datatypes.JSON(raw)
}

func toSubscriptionResponse(sub *db_models.Subscription) *response_models.SubscriptionResponse {
	return &response_models.SubscriptionResponse{
		ID:                 sub.ID,
		CustomerID:         sub.CustomerID,
		PlanID:             sub.PlanID,
		InstrumentID:       sub.InstrumentID,
		Status:             string(sub.Status),
		GatewayMandateRef:  sub.GatewayMandateRef,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		NextBillingDate:    sub.NextBillingDate,
		TrialStart:         sub.TrialStart,
		TrialEnd:           sub.TrialEnd,
		CancelledAt:        sub.CancelledAt,
		EndedAt:            sub.EndedAt,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		BillingCycleCount:  sub.BillingCycleCount,
		FailedPaymentCount: sub.FailedPaymentCount,
		LastPaymentAt:      sub.LastPaymentAt,
		LastPaymentAmount:  sub.LastPaymentAmount,
	}
}
