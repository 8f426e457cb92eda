package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"payflow/internal/infra"
	"payflow/internal/models/db_models"
	"payflow/internal/models/request_models"
	"payflow/internal/models/response_models"
	"payflow/internal/repositories"
	"payflow/pkg/utils"
)

// BillingServiceInterface is the subscription billing engine. The sweeps are
// triggered externally (scheduler or operator); each subscription or payment
// is processed in its own atomic unit, so one bad item never halts the batch.
type BillingServiceInterface interface {
	ProcessRecurringBilling(ctx context.Context)
	ProcessFailedPaymentRetries(ctx context.Context)
	ProcessSubscriptionBilling(ctx context.Context, subscriptionID uuid.UUID) error
}

func NewBillingService(
	txManager repositories.TxManager,
	paymentService PaymentServiceInterface,
	cfg infra.BillingConfig,
	logger *zap.Logger,
) BillingServiceInterface {
	return &BillingService{
		txManager:      txManager,
		paymentService: paymentService,
		cfg:            cfg,
		logger:         logger,
	}
}

type BillingService struct {
	txManager      repositories.TxManager
	paymentService PaymentServiceInterface
	cfg            infra.BillingConfig
	logger         *zap.Logger
}

// ProcessRecurringBilling charges every billable subscription whose due date
// has elapsed.
func (s *BillingService) ProcessRecurringBilling(ctx context.Context) {

	now := time.Now().UTC()

	var due []db_models.Subscription
	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		var err error
		due, err = repos.Subscriptions.FindDue(ctx, now.Unix(), s.cfg.SweepBatchSize)
		return err
	})
	if err != nil {
		s.logger.Error("due-billing sweep: query failed", zap.Error(err))
		return
	}

	charged, failed := 0, 0
	for i := range due {
		if err := s.billSubscription(ctx, due[i].ID); err != nil {
			failed++
			s.logger.Error("due-billing sweep: subscription skipped",
				zap.String("subscription_id", due[i].ID.String()), zap.Error(err))
			continue
		}
		charged++
	}

	s.logger.Info("due-billing sweep finished",
		zap.Int("due", len(due)), zap.Int("processed", charged), zap.Int("skipped", failed))
}

// ProcessFailedPaymentRetries replays failed attempts whose backoff window has
// elapsed and which still have retry budget.
func (s *BillingService) ProcessFailedPaymentRetries(ctx context.Context) {

	now := time.Now().UTC()

	var retryable []db_models.SubscriptionPayment
	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		var err error
		retryable, err = repos.Payments.FindRetryable(ctx, now.Unix(), s.cfg.SweepBatchSize)
		return err
	})
	if err != nil {
		s.logger.Error("retry sweep: query failed", zap.Error(err))
		return
	}

	processed, skipped := 0, 0
	for i := range retryable {
		if err := s.retryPayment(ctx, retryable[i].ID); err != nil {
			skipped++
			s.logger.Error("retry sweep: payment skipped",
				zap.String("payment_id", retryable[i].ID.String()), zap.Error(err))
			continue
		}
		processed++
	}

	s.logger.Info("retry sweep finished",
		zap.Int("retryable", len(retryable)), zap.Int("processed", processed), zap.Int("skipped", skipped))
}

// ProcessSubscriptionBilling bills one subscription on demand.
func (s *BillingService) ProcessSubscriptionBilling(ctx context.Context, subscriptionID uuid.UUID) error {
	return s.billSubscription(ctx, subscriptionID)
}

// billSubscription runs one billing cycle: create the attempt record, drive a
// ledger purchase under a deterministic idempotency key, then apply the
// outcome to the payment and the subscription. A cycle that already has an
// open attempt is never double-booked: a RETRYING one belongs to the retry
// sweep and its backoff schedule, a PENDING one (interrupted before its
// outcome landed) is resumed here.
func (s *BillingService) billSubscription(ctx context.Context, subscriptionID uuid.UUID) error {

	var (
		sub     *db_models.Subscription
		payment *db_models.SubscriptionPayment
	)

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		var err error
		sub, err = repos.Subscriptions.GetByID(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if sub == nil {
			return utils.ErrSubscriptionNotFound
		}
		if !sub.Billable() {
			return utils.NewValidationError("subscription is %s, not billable", sub.Status)
		}

		cycle := sub.BillingCycleCount + 1
		payment, err = repos.Payments.FindOpenByCycle(ctx, sub.ID, cycle)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if payment != nil {
			return nil
		}

		payment = &db_models.SubscriptionPayment{
			SubscriptionID:   sub.ID,
			AmountMinor:      sub.Plan.AmountMinor,
			Currency:         sub.Plan.Currency,
			BillingDate:      sub.NextBillingDate,
			CycleNumber:      cycle,
			Status:           db_models.PaymentStatusPending,
			MaxRetryAttempts: s.cfg.MaxRetryAttempts,
		}
		return repos.Payments.Create(ctx, payment)
	})
	if err != nil {
		return err
	}

	if payment.Status == db_models.PaymentStatusRetrying {
		s.logger.Debug("billing cycle already has a retry scheduled",
			zap.String("subscription_id", sub.ID.String()),
			zap.Int("cycle", payment.CycleNumber))
		return nil
	}

	return s.attemptCharge(ctx, sub, payment, payment.RetryCount)
}

// retryPayment replays one failed attempt.
func (s *BillingService) retryPayment(ctx context.Context, paymentID uuid.UUID) error {

	var (
		sub     *db_models.Subscription
		payment *db_models.SubscriptionPayment
	)

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		var err error
		payment, err = repos.Payments.GetByID(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if payment == nil {
			return utils.ErrRecordNotFound
		}
		if !payment.RetryBudgetLeft() {
			return utils.NewValidationError("payment has exhausted its retry budget")
		}

		sub, err = repos.Subscriptions.GetByID(ctx, payment.SubscriptionID)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if sub == nil {
			return utils.ErrSubscriptionNotFound
		}

		// A subscription cancelled mid-retry closes its pending attempts.
		if !sub.Billable() && sub.Status != db_models.SubStatusPastDue {
			reason := fmt.Sprintf("subscription is %s", sub.Status)
			payment.Status = db_models.PaymentStatusFailed
			payment.FailureReason = &reason
			payment.NextRetryAt = nil
			return repos.Payments.Update(ctx, payment)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if payment.Status == db_models.PaymentStatusFailed && payment.NextRetryAt == nil {
		return nil // closed above, nothing to charge
	}

	return s.attemptCharge(ctx, sub, payment, payment.RetryCount)
}

func (s *BillingService) attemptCharge(ctx context.Context, sub *db_models.Subscription, payment *db_models.SubscriptionPayment, attempt int) error {

	// The key is derived, not random: a sweep replayed within the same cycle
	// and attempt hits the ledger's idempotency guard instead of the network.
	idempotencyKey := fmt.Sprintf("sub:%s:cycle:%d:attempt:%d", sub.ID, payment.CycleNumber, attempt)
	merchantRef := fmt.Sprintf("sub-%.8s-c%d-a%d", sub.ID.String(), payment.CycleNumber, attempt)

	resp, err := s.paymentService.CreatePurchase(ctx, request_models.CreatePaymentRequest{
		IdempotencyKey:    idempotencyKey,
		MerchantReference: merchantRef,
		AmountMinor:       payment.AmountMinor,
		Currency:          payment.Currency,
		InstrumentToken:   sub.Instrument.Token,
		InstrumentKind:    string(sub.Instrument.Kind),
		Description:       fmt.Sprintf("%s billing cycle %d", sub.Plan.Name, payment.CycleNumber),
	})
	if err != nil {
		// Infrastructure fault: no charge happened, so treat it like a failed
		// attempt and let the retry sweep pick it up.
		return s.applyFailure(ctx, sub, payment, nil, err.Error())
	}

	if resp.Success {
		return s.applySuccess(ctx, sub, payment, resp)
	}
	return s.applyFailure(ctx, sub, payment, &resp.TransactionID, resp.Message)
}

// applySuccess completes the payment and rolls the subscription into its next
// period, all in one atomic unit.
func (s *BillingService) applySuccess(ctx context.Context, sub *db_models.Subscription, payment *db_models.SubscriptionPayment, resp *response_models.PaymentResponse) error {

	return s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		now := time.Now().Unix()

		payment.TransactionID = &resp.TransactionID
		payment.Status = db_models.PaymentStatusCompleted
		payment.NextRetryAt = nil
		payment.FailureReason = nil
		payment.ProcessedAt = &now
		if err := repos.Payments.Update(ctx, payment); err != nil {
			return fmt.Errorf("%w: complete payment: %v", utils.ErrDatabaseError, err)
		}

		sub.BillingCycleCount++
		sub.FailedPaymentCount = 0
		sub.LastPaymentAt = &now
		amount := payment.AmountMinor
		sub.LastPaymentAmount = &amount
		sub.Status = db_models.SubStatusActive

		periodStart := time.Unix(sub.NextBillingDate, 0).UTC()
		periodEnd := NextBillingDate(periodStart, sub.Plan.Interval, sub.Plan.IntervalCount)
		sub.CurrentPeriodStart = periodStart.Unix()
		sub.CurrentPeriodEnd = periodEnd.Unix()
		sub.NextBillingDate = periodEnd.Unix()

		if sub.Plan.MaxBillingCycles != nil && sub.BillingCycleCount >= *sub.Plan.MaxBillingCycles {
			sub.Status = db_models.SubStatusExpired
			sub.EndedAt = &now
		}

		if err := repos.Subscriptions.Update(ctx, sub); err != nil {
			return fmt.Errorf("%w: roll subscription period: %v", utils.ErrDatabaseError, err)
		}

		s.logger.Info("billing cycle charged",
			zap.String("subscription_id", sub.ID.String()),
			zap.Int("cycle", payment.CycleNumber),
			zap.String("status", string(sub.Status)))
		return nil
	})
}

// applyFailure books one failed attempt: schedule a retry while budget lasts,
// fail terminally once it runs out, and escalate the subscription to past-due
// after enough consecutive failures.
func (s *BillingService) applyFailure(ctx context.Context, sub *db_models.Subscription, payment *db_models.SubscriptionPayment, transactionID *uuid.UUID, reason string) error {

	return s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		now := time.Now().UTC()
		nowUnix := now.Unix()

		payment.TransactionID = transactionID
		payment.FailureReason = &reason
		payment.ProcessedAt = &nowUnix
		payment.RetryCount++

		if payment.RetryCount >= payment.MaxRetryAttempts {
			payment.Status = db_models.PaymentStatusFailed
			payment.NextRetryAt = nil
		} else {
			retryAt := utils.NextRetryAt(now, payment.RetryCount-1).Unix()
			payment.Status = db_models.PaymentStatusRetrying
			payment.NextRetryAt = &retryAt
		}

		if err := repos.Payments.Update(ctx, payment); err != nil {
			return fmt.Errorf("%w: record failed payment: %v", utils.ErrDatabaseError, err)
		}

		sub.FailedPaymentCount++
		if sub.FailedPaymentCount >= s.cfg.PastDueThreshold {
			sub.Status = db_models.SubStatusPastDue
		}
		if err := repos.Subscriptions.Update(ctx, sub); err != nil {
			return fmt.Errorf("%w: record subscription failure: %v", utils.ErrDatabaseError, err)
		}

		s.logger.Warn("billing attempt failed",
			zap.String("subscription_id", sub.ID.String()),
			zap.Int("cycle", payment.CycleNumber),
			zap.Int("retry_count", payment.RetryCount),
			zap.String("payment_status", string(payment.Status)),
			zap.String("reason", reason))
		return nil
	})
}
