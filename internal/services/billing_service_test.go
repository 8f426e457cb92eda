package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payflow/internal/infra"
	"payflow/internal/models/db_models"
	"payflow/internal/models/request_models"
	"payflow/internal/models/response_models"
	"payflow/internal/repositories"
	"payflow/internal/repositories/mocks"
	"payflow/pkg/utils"
)

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) CreatePurchase(ctx context.Context, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*response_models.PaymentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) CreateAuthorization(ctx context.Context, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*response_models.PaymentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) CapturePayment(ctx context.Context, parentID uuid.UUID, req request_models.CapturePaymentRequest) (*response_models.PaymentResponse, error) {
	args := m.Called(ctx, parentID, req)
	if v := args.Get(0); v != nil {
		return v.(*response_models.PaymentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) RefundPayment(ctx context.Context, parentID uuid.UUID, req request_models.RefundPaymentRequest) (*response_models.PaymentResponse, error) {
	args := m.Called(ctx, parentID, req)
	if v := args.Get(0); v != nil {
		return v.(*response_models.PaymentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) CancelPayment(ctx context.Context, parentID uuid.UUID, req request_models.CancelPaymentRequest) (*response_models.PaymentResponse, error) {
	args := m.Called(ctx, parentID, req)
	if v := args.Get(0); v != nil {
		return v.(*response_models.PaymentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPaymentService) GetTransaction(ctx context.Context, id uuid.UUID) (*response_models.PaymentResponse, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*response_models.PaymentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type billingFixture struct {
	subRepo     *mocks.MockSubscriptionRepository
	paymentRepo *mocks.MockSubscriptionPaymentRepository
	ledger      *mockPaymentService
	svc         BillingServiceInterface
}

func newBillingFixture() *billingFixture {
	f := &billingFixture{
		subRepo:     mocks.NewMockSubscriptionRepository(),
		paymentRepo: mocks.NewMockSubscriptionPaymentRepository(),
		ledger:      &mockPaymentService{},
	}
	txManager := &mocks.StubTxManager{
		Repos: repositories.Repositories{
			Subscriptions: f.subRepo,
			Payments:      f.paymentRepo,
		},
	}
	f.svc = NewBillingService(txManager, f.ledger, infra.BillingConfig{
		MaxRetryAttempts: 3,
		PastDueThreshold: 3,
		SweepBatchSize:   100,
	}, zap.NewNop())
	return f
}

func dueSubscription(status db_models.SubscriptionStatus) *db_models.Subscription {
	now := time.Now().UTC()
	plan := db_models.SubscriptionPlan{
		Name:          "pro_monthly",
		AmountMinor:   999,
		Currency:      "USD",
		Interval:      db_models.IntervalMonthly,
		IntervalCount: 1,
		IsActive:      true,
	}
	plan.ID = uuid.New()

	instrument := db_models.PaymentInstrument{
		Kind:     db_models.InstrumentCard,
		Token:    "tok_visa_4242",
		IsActive: true,
	}
	instrument.ID = uuid.New()

	sub := &db_models.Subscription{
		CustomerID:         uuid.New(),
		PlanID:             plan.ID,
		InstrumentID:       instrument.ID,
		Status:             status,
		GatewayMandateRef:  "mandate-123",
		CurrentPeriodStart: now.AddDate(0, -1, 0).Unix(),
		CurrentPeriodEnd:   now.Unix(),
		NextBillingDate:    now.Unix(),
		Plan:               plan,
		Instrument:         instrument,
	}
	sub.ID = uuid.New()
	return sub
}

func approvedPurchase() *response_models.PaymentResponse {
	return &response_models.PaymentResponse{
		TransactionID: uuid.New(),
		Status:        string(db_models.TxnStatusCompleted),
		Success:       true,
	}
}

func declinedPurchase(msg string) *response_models.PaymentResponse {
	return &response_models.PaymentResponse{
		TransactionID: uuid.New(),
		Status:        string(db_models.TxnStatusFailed),
		Success:       false,
		Message:       msg,
	}
}

func TestProcessSubscriptionBilling_SuccessRollsPeriod(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)
	dueDate := sub.NextBillingDate

	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 1).Return(nil, nil)
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*db_models.SubscriptionPayment")).Return(nil)

	var purchaseReq request_models.CreatePaymentRequest
	f.ledger.On("CreatePurchase", ctx, mock.AnythingOfType("request_models.CreatePaymentRequest")).
		Run(func(args mock.Arguments) { purchaseReq = args.Get(1).(request_models.CreatePaymentRequest) }).
		Return(approvedPurchase(), nil)

	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	err := f.svc.ProcessSubscriptionBilling(ctx, sub.ID)
	require.NoError(t, err)

	// The idempotency key is derived from subscription, cycle, and attempt,
	// so a replayed sweep hits the ledger guard instead of the network.
	assert.Equal(t, "sub:"+sub.ID.String()+":cycle:1:attempt:0", purchaseReq.IdempotencyKey)
	assert.Equal(t, int64(999), purchaseReq.AmountMinor)
	assert.Equal(t, "tok_visa_4242", purchaseReq.InstrumentToken)

	assert.Equal(t, 1, sub.BillingCycleCount)
	assert.Equal(t, 0, sub.FailedPaymentCount)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)

	// The period anchors to the scheduled due date, not to wall-clock now.
	assert.Equal(t, dueDate, sub.CurrentPeriodStart)
	expectedNext := NextBillingDate(time.Unix(dueDate, 0).UTC(), db_models.IntervalMonthly, 1).Unix()
	assert.Equal(t, expectedNext, sub.NextBillingDate)
	assert.Equal(t, expectedNext, sub.CurrentPeriodEnd)
	require.NotNil(t, sub.LastPaymentAmount)
	assert.Equal(t, int64(999), *sub.LastPaymentAmount)
}

func TestProcessSubscriptionBilling_TrialingActivatesOnFirstCharge(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusTrialing)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 1).Return(nil, nil)
	f.paymentRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).Return(approvedPurchase(), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	err := f.svc.ProcessSubscriptionBilling(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
}

func TestProcessSubscriptionBilling_MaxCyclesExpires(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)
	maxCycles := 3
	sub.Plan.MaxBillingCycles = &maxCycles
	sub.BillingCycleCount = 2

	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 3).Return(nil, nil)
	f.paymentRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).Return(approvedPurchase(), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	err := f.svc.ProcessSubscriptionBilling(ctx, sub.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, sub.BillingCycleCount)
	assert.Equal(t, db_models.SubStatusExpired, sub.Status)
	assert.NotNil(t, sub.EndedAt)
}

func TestProcessSubscriptionBilling_DeclineSchedulesRetry(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 1).Return(nil, nil)

	var payment *db_models.SubscriptionPayment
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*db_models.SubscriptionPayment")).
		Run(func(args mock.Arguments) { payment = args.Get(1).(*db_models.SubscriptionPayment) }).
		Return(nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).Return(declinedPurchase("card_declined"), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	before := time.Now().UTC()
	err := f.svc.ProcessSubscriptionBilling(ctx, sub.ID)
	require.NoError(t, err)

	require.NotNil(t, payment)
	assert.Equal(t, db_models.PaymentStatusRetrying, payment.Status)
	assert.Equal(t, 1, payment.RetryCount)
	require.NotNil(t, payment.NextRetryAt)

	// First retry waits the 30-minute base delay.
	expected := before.Add(30 * time.Minute).Unix()
	assert.InDelta(t, expected, *payment.NextRetryAt, 5)

	assert.Equal(t, 1, sub.FailedPaymentCount)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	assert.Equal(t, 0, sub.BillingCycleCount)
}

func TestProcessSubscriptionBilling_InfraFaultCountsAsFailedAttempt(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 1).Return(nil, nil)

	var payment *db_models.SubscriptionPayment
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*db_models.SubscriptionPayment")).
		Run(func(args mock.Arguments) { payment = args.Get(1).(*db_models.SubscriptionPayment) }).
		Return(nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).
		Return(nil, errors.New("settlement gateway unavailable: purchase: timeout"))
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	err := f.svc.ProcessSubscriptionBilling(ctx, sub.ID)
	require.NoError(t, err)

	require.NotNil(t, payment)
	assert.Equal(t, db_models.PaymentStatusRetrying, payment.Status)
	require.NotNil(t, payment.FailureReason)
	assert.Contains(t, *payment.FailureReason, "unavailable")
}

func TestProcessSubscriptionBilling_NotBillableRejected(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusCancelled)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)

	err := f.svc.ProcessSubscriptionBilling(ctx, sub.ID)
	assert.True(t, utils.IsValidation(err))
	f.ledger.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
}

func retryingPayment(sub *db_models.Subscription, retryCount int) *db_models.SubscriptionPayment {
	retryAt := time.Now().UTC().Add(-time.Minute).Unix()
	payment := &db_models.SubscriptionPayment{
		SubscriptionID:   sub.ID,
		AmountMinor:      sub.Plan.AmountMinor,
		Currency:         sub.Plan.Currency,
		BillingDate:      sub.NextBillingDate,
		CycleNumber:      1,
		Status:           db_models.PaymentStatusRetrying,
		RetryCount:       retryCount,
		MaxRetryAttempts: 3,
		NextRetryAt:      &retryAt,
	}
	payment.ID = uuid.New()
	return payment
}

func TestRetrySweep_ThirdFailureIsTerminalAndPastDue(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)
	sub.FailedPaymentCount = 2
	payment := retryingPayment(sub, 2) // two failures already booked

	f.paymentRepo.On("FindRetryable", ctx, mock.AnythingOfType("int64"), 100).
		Return([]db_models.SubscriptionPayment{*payment}, nil)
	f.paymentRepo.On("GetByID", ctx, payment.ID).Return(payment, nil)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)

	var purchaseReq request_models.CreatePaymentRequest
	f.ledger.On("CreatePurchase", ctx, mock.AnythingOfType("request_models.CreatePaymentRequest")).
		Run(func(args mock.Arguments) { purchaseReq = args.Get(1).(request_models.CreatePaymentRequest) }).
		Return(declinedPurchase("card_declined"), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	f.svc.ProcessFailedPaymentRetries(ctx)

	// Attempt number equals the retries already consumed.
	assert.Equal(t, "sub:"+sub.ID.String()+":cycle:1:attempt:2", purchaseReq.IdempotencyKey)

	assert.Equal(t, db_models.PaymentStatusFailed, payment.Status)
	assert.Equal(t, 3, payment.RetryCount)
	assert.Nil(t, payment.NextRetryAt)

	assert.Equal(t, 3, sub.FailedPaymentCount)
	assert.Equal(t, db_models.SubStatusPastDue, sub.Status)
}

func TestRetrySweep_SecondFailureDoublesDelay(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)
	sub.FailedPaymentCount = 1
	payment := retryingPayment(sub, 1)

	f.paymentRepo.On("FindRetryable", ctx, mock.AnythingOfType("int64"), 100).
		Return([]db_models.SubscriptionPayment{*payment}, nil)
	f.paymentRepo.On("GetByID", ctx, payment.ID).Return(payment, nil)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).Return(declinedPurchase("card_declined"), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	before := time.Now().UTC()
	f.svc.ProcessFailedPaymentRetries(ctx)

	assert.Equal(t, db_models.PaymentStatusRetrying, payment.Status)
	assert.Equal(t, 2, payment.RetryCount)
	require.NotNil(t, payment.NextRetryAt)
	assert.InDelta(t, before.Add(time.Hour).Unix(), *payment.NextRetryAt, 5)

	assert.Equal(t, 2, sub.FailedPaymentCount)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
}

func TestRetrySweep_RecoveryResetsFailureCount(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusPastDue)
	sub.FailedPaymentCount = 2
	payment := retryingPayment(sub, 2)

	f.paymentRepo.On("FindRetryable", ctx, mock.AnythingOfType("int64"), 100).
		Return([]db_models.SubscriptionPayment{*payment}, nil)
	f.paymentRepo.On("GetByID", ctx, payment.ID).Return(payment, nil)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).Return(approvedPurchase(), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	f.svc.ProcessFailedPaymentRetries(ctx)

	assert.Equal(t, db_models.PaymentStatusCompleted, payment.Status)
	assert.Nil(t, payment.NextRetryAt)
	assert.Equal(t, 0, sub.FailedPaymentCount)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
	assert.Equal(t, 1, sub.BillingCycleCount)
}

func TestRetrySweep_CancelledSubscriptionClosesPayment(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusCancelled)
	payment := retryingPayment(sub, 1)

	f.paymentRepo.On("FindRetryable", ctx, mock.AnythingOfType("int64"), 100).
		Return([]db_models.SubscriptionPayment{*payment}, nil)
	f.paymentRepo.On("GetByID", ctx, payment.ID).Return(payment, nil)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)

	f.svc.ProcessFailedPaymentRetries(ctx)

	assert.Equal(t, db_models.PaymentStatusFailed, payment.Status)
	assert.Nil(t, payment.NextRetryAt)
	require.NotNil(t, payment.FailureReason)
	assert.Contains(t, *payment.FailureReason, "cancelled")
	f.ledger.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
}

func TestDueSweep_OneBadItemDoesNotHaltBatch(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	broken := dueSubscription(db_models.SubStatusActive)
	healthy := dueSubscription(db_models.SubStatusActive)

	f.subRepo.On("FindDue", ctx, mock.AnythingOfType("int64"), 100).
		Return([]db_models.Subscription{*broken, *healthy}, nil)

	f.subRepo.On("GetByID", ctx, broken.ID).Return(nil, errors.New("connection reset"))
	f.subRepo.On("GetByID", ctx, healthy.ID).Return(healthy, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, healthy.ID, 1).Return(nil, nil)
	f.paymentRepo.On("Create", ctx, mock.Anything).Return(nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).Return(approvedPurchase(), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	f.svc.ProcessRecurringBilling(ctx)

	// The healthy subscription still got billed.
	assert.Equal(t, 1, healthy.BillingCycleCount)
	f.ledger.AssertNumberOfCalls(t, "CreatePurchase", 1)
}

func TestDueSweep_RepeatedSweepsDoNotReadmitDecliningCycle(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)

	f.subRepo.On("FindDue", ctx, mock.AnythingOfType("int64"), 100).
		Return([]db_models.Subscription{*sub}, nil)
	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 1).Return(nil, nil).Once()

	var payment *db_models.SubscriptionPayment
	f.paymentRepo.On("Create", ctx, mock.AnythingOfType("*db_models.SubscriptionPayment")).
		Run(func(args mock.Arguments) { payment = args.Get(1).(*db_models.SubscriptionPayment) }).
		Return(nil)
	f.ledger.On("CreatePurchase", ctx, mock.Anything).Return(declinedPurchase("card_declined"), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	f.svc.ProcessRecurringBilling(ctx)

	require.NotNil(t, payment)
	assert.Equal(t, db_models.PaymentStatusRetrying, payment.Status)
	assert.Equal(t, 1, sub.FailedPaymentCount)

	// The cycle now has a scheduled retry; further due sweeps must leave it
	// to the retry sweep instead of booking fresh attempts off replays.
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 1).Return(payment, nil)

	f.svc.ProcessRecurringBilling(ctx)
	f.svc.ProcessRecurringBilling(ctx)

	f.ledger.AssertNumberOfCalls(t, "CreatePurchase", 1)
	f.paymentRepo.AssertNumberOfCalls(t, "Create", 1)
	assert.Equal(t, 1, sub.FailedPaymentCount)
	assert.Equal(t, db_models.SubStatusActive, sub.Status)
}

func TestProcessSubscriptionBilling_ResumesInterruptedAttempt(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	sub := dueSubscription(db_models.SubStatusActive)

	// An attempt created by an earlier sweep that crashed before its outcome
	// landed stays PENDING; the next sweep picks it back up under the same
	// idempotency key instead of booking a second row.
	stranded := &db_models.SubscriptionPayment{
		SubscriptionID:   sub.ID,
		AmountMinor:      sub.Plan.AmountMinor,
		Currency:         sub.Plan.Currency,
		BillingDate:      sub.NextBillingDate,
		CycleNumber:      1,
		Status:           db_models.PaymentStatusPending,
		MaxRetryAttempts: 3,
	}
	stranded.ID = uuid.New()

	f.subRepo.On("GetByID", ctx, sub.ID).Return(sub, nil)
	f.paymentRepo.On("FindOpenByCycle", ctx, sub.ID, 1).Return(stranded, nil)

	var purchaseReq request_models.CreatePaymentRequest
	f.ledger.On("CreatePurchase", ctx, mock.AnythingOfType("request_models.CreatePaymentRequest")).
		Run(func(args mock.Arguments) { purchaseReq = args.Get(1).(request_models.CreatePaymentRequest) }).
		Return(approvedPurchase(), nil)
	f.paymentRepo.On("Update", ctx, mock.Anything).Return(nil)
	f.subRepo.On("Update", ctx, mock.Anything).Return(nil)

	err := f.svc.ProcessSubscriptionBilling(ctx, sub.ID)
	require.NoError(t, err)

	assert.Equal(t, "sub:"+sub.ID.String()+":cycle:1:attempt:0", purchaseReq.IdempotencyKey)
	assert.Equal(t, db_models.PaymentStatusCompleted, stranded.Status)
	assert.Equal(t, 1, sub.BillingCycleCount)
	f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDueSweep_QueryFailureLogsAndReturns(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	f.subRepo.On("FindDue", ctx, mock.AnythingOfType("int64"), 100).
		Return(nil, errors.New("connection refused"))

	f.svc.ProcessRecurringBilling(ctx)

	f.ledger.AssertNotCalled(t, "CreatePurchase", mock.Anything, mock.Anything)
}
