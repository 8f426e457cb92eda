// Package mocks provides hand-rolled testify mocks for the repository layer.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"payflow/internal/models/db_models"
	"payflow/internal/repositories"
)

// StubTxManager hands a fixed repository bundle to every unit of work. The
// closure's error is returned unchanged, mirroring commit/rollback behavior.
type StubTxManager struct {
	Repos repositories.Repositories
}

func (m *StubTxManager) Do(ctx context.Context, fn func(repos repositories.Repositories) error) error {
	return fn(m.Repos)
}

type MockTransactionRepository struct {
	mock.Mock
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *db_models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*db_models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Transaction, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*db_models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (*db_models.Transaction, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.(*db_models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, txn *db_models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *db_models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Subscription, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*db_models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *db_models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindDue(ctx context.Context, nowUnix int64, limit int) ([]db_models.Subscription, error) {
	args := m.Called(ctx, nowUnix, limit)
	if v := args.Get(0); v != nil {
		return v.([]db_models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSubscriptionPaymentRepository struct {
	mock.Mock
}

func NewMockSubscriptionPaymentRepository() *MockSubscriptionPaymentRepository {
	return &MockSubscriptionPaymentRepository{}
}

func (m *MockSubscriptionPaymentRepository) Create(ctx context.Context, payment *db_models.SubscriptionPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockSubscriptionPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPayment, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*db_models.SubscriptionPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubscriptionPaymentRepository) Update(ctx context.Context, payment *db_models.SubscriptionPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockSubscriptionPaymentRepository) FindOpenByCycle(ctx context.Context, subscriptionID uuid.UUID, cycleNumber int) (*db_models.SubscriptionPayment, error) {
	args := m.Called(ctx, subscriptionID, cycleNumber)
	if v := args.Get(0); v != nil {
		return v.(*db_models.SubscriptionPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSubscriptionPaymentRepository) FindRetryable(ctx context.Context, nowUnix int64, limit int) ([]db_models.SubscriptionPayment, error) {
	args := m.Called(ctx, nowUnix, limit)
	if v := args.Get(0); v != nil {
		return v.([]db_models.SubscriptionPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPlanRepository struct {
	mock.Mock
}

func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{}
}

func (m *MockPlanRepository) Create(ctx context.Context, plan *db_models.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*db_models.SubscriptionPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlanRepository) GetByName(ctx context.Context, name string) (*db_models.SubscriptionPlan, error) {
	args := m.Called(ctx, name)
	if v := args.Get(0); v != nil {
		return v.(*db_models.SubscriptionPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlanRepository) GetAll(ctx context.Context) ([]db_models.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]db_models.SubscriptionPlan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlanRepository) Update(ctx context.Context, plan *db_models.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

type MockInstrumentRepository struct {
	mock.Mock
}

func NewMockInstrumentRepository() *MockInstrumentRepository {
	return &MockInstrumentRepository{}
}

func (m *MockInstrumentRepository) Create(ctx context.Context, instrument *db_models.PaymentInstrument) error {
	args := m.Called(ctx, instrument)
	return args.Error(0)
}

func (m *MockInstrumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PaymentInstrument, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*db_models.PaymentInstrument), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInstrumentRepository) GetByCustomer(ctx context.Context, customerID uuid.UUID) ([]db_models.PaymentInstrument, error) {
	args := m.Called(ctx, customerID)
	if v := args.Get(0); v != nil {
		return v.([]db_models.PaymentInstrument), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInstrumentRepository) Update(ctx context.Context, instrument *db_models.PaymentInstrument) error {
	args := m.Called(ctx, instrument)
	return args.Error(0)
}
