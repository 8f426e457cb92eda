package gateway

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"payflow/pkg/utils"
)

// Adapter is the ledger's view of the settlement network: blocking calls,
// normalized results, provider faults wrapped as infrastructure failures.
type Adapter interface {
	Purchase(ctx context.Context, req PaymentRequest) (*Result, error)
	Authorize(ctx context.Context, req PaymentRequest) (*Result, error)
	Capture(ctx context.Context, txnRef string, amountMinor int64) (*Result, error)
	Refund(ctx context.Context, txnRef string, amountMinor int64, instrumentHint string) (*Result, error)
	Void(ctx context.Context, txnRef string) (*Result, error)

	CreateRecurringMandate(ctx context.Context, req MandateRequest) (string, error)
	CancelRecurringMandate(ctx context.Context, mandateRef string) error
}

type adapter struct {
	client SettlementClient
	logger *zap.Logger
}

func NewAdapter(client SettlementClient, logger *zap.Logger) Adapter {
	return &adapter{
		client: client,
		logger: logger,
	}
}

func (a *adapter) Purchase(ctx context.Context, req PaymentRequest) (*Result, error) {
	result, err := a.client.Purchase(ctx, req)
	return a.normalize("purchase", result, err)
}

func (a *adapter) Authorize(ctx context.Context, req PaymentRequest) (*Result, error) {
	result, err := a.client.Authorize(ctx, req)
	return a.normalize("authorize", result, err)
}

func (a *adapter) Capture(ctx context.Context, txnRef string, amountMinor int64) (*Result, error) {
	result, err := a.client.Capture(ctx, txnRef, amountMinor)
	return a.normalize("capture", result, err)
}

func (a *adapter) Refund(ctx context.Context, txnRef string, amountMinor int64, instrumentHint string) (*Result, error) {
	result, err := a.client.Refund(ctx, txnRef, amountMinor, instrumentHint)
	return a.normalize("refund", result, err)
}

func (a *adapter) Void(ctx context.Context, txnRef string) (*Result, error) {
	result, err := a.client.Void(ctx, txnRef)
	return a.normalize("void", result, err)
}

func (a *adapter) CreateRecurringMandate(ctx context.Context, req MandateRequest) (string, error) {
	mandateRef, err := a.client.CreateRecurringMandate(ctx, req)
	if err != nil {
		a.logger.Error("mandate registration failed", zap.Error(err))
		return "", fmt.Errorf("%w: create mandate: %v", utils.ErrGatewayUnavailable, err)
	}
	return mandateRef, nil
}

func (a *adapter) CancelRecurringMandate(ctx context.Context, mandateRef string) error {
	if err := a.client.CancelRecurringMandate(ctx, mandateRef); err != nil {
		a.logger.Error("mandate cancellation failed",
			zap.String("mandate_ref", mandateRef), zap.Error(err))
		return fmt.Errorf("%w: cancel mandate: %v", utils.ErrGatewayUnavailable, err)
	}
	return nil
}

func (a *adapter) normalize(op string, result *Result, err error) (*Result, error) {
	if err != nil {
		a.logger.Error("settlement call failed", zap.String("operation", op), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", utils.ErrGatewayUnavailable, op, err)
	}
	if !result.Success {
		a.logger.Warn("settlement call declined",
			zap.String("operation", op), zap.String("message", result.Message))
	}
	return result, nil
}
