package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payflow/pkg/utils"
)

type stubClient struct {
	result     *Result
	err        error
	mandateRef string
}

func (s *stubClient) Purchase(ctx context.Context, req PaymentRequest) (*Result, error) {
	return s.result, s.err
}

func (s *stubClient) Authorize(ctx context.Context, req PaymentRequest) (*Result, error) {
	return s.result, s.err
}

func (s *stubClient) Capture(ctx context.Context, txnRef string, amountMinor int64) (*Result, error) {
	return s.result, s.err
}

func (s *stubClient) Refund(ctx context.Context, txnRef string, amountMinor int64, instrumentHint string) (*Result, error) {
	return s.result, s.err
}

func (s *stubClient) Void(ctx context.Context, txnRef string) (*Result, error) {
	return s.result, s.err
}

func (s *stubClient) CreateRecurringMandate(ctx context.Context, req MandateRequest) (string, error) {
	return s.mandateRef, s.err
}

func (s *stubClient) CancelRecurringMandate(ctx context.Context, mandateRef string) error {
	return s.err
}

func TestAdapter_SuccessPassesThrough(t *testing.T) {
	client := &stubClient{result: &Result{Success: true, GatewayRef: "gw-1"}}
	a := NewAdapter(client, zap.NewNop())

	result, err := a.Purchase(context.Background(), PaymentRequest{AmountMinor: 100})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "gw-1", result.GatewayRef)
}

func TestAdapter_DeclineIsNotAnError(t *testing.T) {
	client := &stubClient{result: &Result{Success: false, Message: "do_not_honor"}}
	a := NewAdapter(client, zap.NewNop())

	result, err := a.Authorize(context.Background(), PaymentRequest{AmountMinor: 100})

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "do_not_honor", result.Message)
}

func TestAdapter_TransportFaultWrapsAsUnavailable(t *testing.T) {
	client := &stubClient{err: errors.New("dial tcp: connection refused")}
	a := NewAdapter(client, zap.NewNop())

	result, err := a.Capture(context.Background(), "gw-1", 100)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, utils.ErrGatewayUnavailable)
	assert.Contains(t, err.Error(), "capture")
}

func TestAdapter_MandateFaultWrapsAsUnavailable(t *testing.T) {
	client := &stubClient{err: errors.New("dial tcp: connection refused")}
	a := NewAdapter(client, zap.NewNop())

	_, err := a.CreateRecurringMandate(context.Background(), MandateRequest{PlanName: "pro_monthly"})
	assert.ErrorIs(t, err, utils.ErrGatewayUnavailable)

	err = a.CancelRecurringMandate(context.Background(), "mandate-1")
	assert.ErrorIs(t, err, utils.ErrGatewayUnavailable)
}

func TestAdapter_MandateSuccessReturnsRef(t *testing.T) {
	client := &stubClient{mandateRef: "mandate-42"}
	a := NewAdapter(client, zap.NewNop())

	ref, err := a.CreateRecurringMandate(context.Background(), MandateRequest{PlanName: "pro_monthly"})

	require.NoError(t, err)
	assert.Equal(t, "mandate-42", ref)
}
