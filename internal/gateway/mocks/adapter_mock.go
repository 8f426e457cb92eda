// Package mocks provides a testify mock of the settlement adapter.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"payflow/internal/gateway"
)

type MockAdapter struct {
	mock.Mock
}

func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

func (m *MockAdapter) Purchase(ctx context.Context, req gateway.PaymentRequest) (*gateway.Result, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*gateway.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdapter) Authorize(ctx context.Context, req gateway.PaymentRequest) (*gateway.Result, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*gateway.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdapter) Capture(ctx context.Context, txnRef string, amountMinor int64) (*gateway.Result, error) {
	args := m.Called(ctx, txnRef, amountMinor)
	if v := args.Get(0); v != nil {
		return v.(*gateway.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdapter) Refund(ctx context.Context, txnRef string, amountMinor int64, instrumentHint string) (*gateway.Result, error) {
	args := m.Called(ctx, txnRef, amountMinor, instrumentHint)
	if v := args.Get(0); v != nil {
		return v.(*gateway.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdapter) Void(ctx context.Context, txnRef string) (*gateway.Result, error) {
	args := m.Called(ctx, txnRef)
	if v := args.Get(0); v != nil {
		return v.(*gateway.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdapter) CreateRecurringMandate(ctx context.Context, req gateway.MandateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockAdapter) CancelRecurringMandate(ctx context.Context, mandateRef string) error {
	args := m.Called(ctx, mandateRef)
	return args.Error(0)
}
