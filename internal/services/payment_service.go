package services

import (
	"context"
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

// PaymentServiceInterface is the transaction ledger: every mutating call is an
// idempotent two-phase write against the settlement gateway. Callers always
// get a PaymentResponse describing success, decline, or duplicate replay;
// only validation, conflict, not-found and infrastructure conditions error.
type PaymentServiceInterface interface {
	CreatePurchase(ctx context.Context, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error)
	CreateAuthorization(ctx context.Context, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error)
	CapturePayment(ctx context.Context, parentID uuid.UUID, req request_models.CapturePaymentRequest) (*response_models.PaymentResponse, error)
	RefundPayment(ctx context.Context, parentID uuid.UUID, req request_models.RefundPaymentRequest) (*response_models.PaymentResponse, error)
	CancelPayment(ctx context.Context, parentID uuid.UUID, req request_models.CancelPaymentRequest) (*response_models.PaymentResponse, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*response_models.PaymentResponse, error)
}

func NewPaymentService(
	txManager repositories.TxManager,
	adapter gateway.Adapter,
	logger *zap.Logger,
) PaymentServiceInterface {
	return &PaymentService{
		txManager: txManager,
		adapter:   adapter,
		logger:    logger,
	}
}

type PaymentService struct {
	txManager repositories.TxManager
	adapter   gateway.Adapter
	logger    *zap.Logger
}

func (s *PaymentService) CreatePurchase(ctx context.Context, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error) {
	return s.executePayment(ctx, db_models.TxnTypePurchase, req)
}

func (s *PaymentService) CreateAuthorization(ctx context.Context, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error) {
	return s.executePayment(ctx, db_models.TxnTypeAuthorization, req)
}

// executePayment runs a purchase or authorization as one atomic unit:
// idempotency lookup, PROCESSING write, gateway call, terminal write. An
// adapter or persistence fault rolls the whole unit back.
func (s *PaymentService) executePayment(ctx context.Context, txnType db_models.TransactionType, req request_models.CreatePaymentRequest) (*response_models.PaymentResponse, error) {

	var resp *response_models.PaymentResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		echo, err := s.checkIdempotency(ctx, repos, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if echo != nil {
			resp = echo
			return nil
		}

		txn := &db_models.Transaction{
			MerchantReference: req.MerchantReference,
			Type:              txnType,
			Status:            db_models.TxnStatusProcessing,
			InstrumentKind:    db_models.InstrumentKind(req.InstrumentKind),
			AmountMinor:       req.AmountMinor,
			Currency:          req.Currency,
			IdempotencyKey:    req.IdempotencyKey,
		}

		if err := s.createProcessing(ctx, repos, txn); err != nil {
			return err
		}

		gwReq := gateway.PaymentRequest{
			AmountMinor:     req.AmountMinor,
			Currency:        req.Currency,
			InstrumentToken: req.InstrumentToken,
			OrderRef:        req.MerchantReference,
			Description:     req.Description,
		}

		var result *gateway.Result
		if txnType == db_models.TxnTypePurchase {
			result, err = s.adapter.Purchase(ctx, gwReq)
		} else {
			result, err = s.adapter.Authorize(ctx, gwReq)
		}
		if err != nil {
			return err
		}

		applyGatewayResult(txn, result)
		if err := repos.Transactions.Update(ctx, txn); err != nil {
			return fmt.Errorf("%w: update transaction: %v", utils.ErrDatabaseError, err)
		}

		resp = toPaymentResponse(txn, false)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PaymentService) CapturePayment(ctx context.Context, parentID uuid.UUID, req request_models.CapturePaymentRequest) (*response_models.PaymentResponse, error) {

	var resp *response_models.PaymentResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		echo, err := s.checkIdempotency(ctx, repos, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if echo != nil {
			resp = echo
			return nil
		}

		parent, err := s.lockParent(ctx, repos, parentID)
		if err != nil {
			return err
		}

		if parent.Type != db_models.TxnTypeAuthorization {
			return utils.NewValidationError("capture requires an authorization, got %s", parent.Type)
		}
		if parent.Status != db_models.TxnStatusCompleted {
			return utils.NewValidationError("authorization is %s, only completed authorizations can be captured", parent.Status)
		}
		if parent.CapturedAmountMinor > 0 {
			return utils.NewValidationError("authorization has already been captured")
		}

		amount := parent.AmountMinor
		if req.AmountMinor != nil {
			amount = *req.AmountMinor
		}
		if amount > parent.AmountMinor {
			return utils.NewValidationError("capture amount %d exceeds authorized amount %d", amount, parent.AmountMinor)
		}

		txn := s.childTransaction(parent, db_models.TxnTypeCapture, amount, req.IdempotencyKey)
		if err := s.createProcessing(ctx, repos, txn); err != nil {
			return err
		}

		result, err := s.adapter.Capture(ctx, derefGatewayRef(parent), amount)
		if err != nil {
			return err
		}

		applyGatewayResult(txn, result)
		if err := repos.Transactions.Update(ctx, txn); err != nil {
			return fmt.Errorf("%w: update capture: %v", utils.ErrDatabaseError, err)
		}

		// Marking the authorization spent commits with the capture, so a
		// second capture under a fresh key cannot settle it again.
		if result.Success {
			parent.CapturedAmountMinor = amount
			if err := repos.Transactions.Update(ctx, parent); err != nil {
				return fmt.Errorf("%w: update captured authorization: %v", utils.ErrDatabaseError, err)
			}
		}

		resp = toPaymentResponse(txn, false)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PaymentService) RefundPayment(ctx context.Context, parentID uuid.UUID, req request_models.RefundPaymentRequest) (*response_models.PaymentResponse, error) {

	var resp *response_models.PaymentResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		echo, err := s.checkIdempotency(ctx, repos, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if echo != nil {
			resp = echo
			return nil
		}

		parent, err := s.lockParent(ctx, repos, parentID)
		if err != nil {
			return err
		}

		if parent.Type != db_models.TxnTypePurchase && parent.Type != db_models.TxnTypeCapture {
			return utils.NewValidationError("refund requires a purchase or capture, got %s", parent.Type)
		}
		if parent.Status != db_models.TxnStatusCompleted && parent.Status != db_models.TxnStatusPartiallyRefunded {
			return utils.NewValidationError("transaction is %s, nothing to refund", parent.Status)
		}

		remaining := parent.RemainingRefundable()
		amount := remaining
		if req.AmountMinor != nil {
			amount = *req.AmountMinor
		}
		if amount > remaining {
			return utils.NewValidationError("refund amount %d exceeds remaining refundable %d", amount, remaining)
		}

		txn := s.childTransaction(parent, db_models.TxnTypeRefund, amount, req.IdempotencyKey)
		if err := s.createProcessing(ctx, repos, txn); err != nil {
			return err
		}

		result, err := s.adapter.Refund(ctx, derefGatewayRef(parent), amount, string(parent.InstrumentKind))
		if err != nil {
			return err
		}

		applyGatewayResult(txn, result)
		if err := repos.Transactions.Update(ctx, txn); err != nil {
			return fmt.Errorf("%w: update refund: %v", utils.ErrDatabaseError, err)
		}

		// The parent's refund tally commits atomically with the refund itself.
		if result.Success {
			parent.RefundedAmountMinor += amount
			if parent.RefundedAmountMinor >= parent.AmountMinor {
				parent.Status = db_models.TxnStatusRefunded
			} else {
				parent.Status = db_models.TxnStatusPartiallyRefunded
			}
			if err := repos.Transactions.Update(ctx, parent); err != nil {
				return fmt.Errorf("%w: update refunded parent: %v", utils.ErrDatabaseError, err)
			}
		}

		resp = toPaymentResponse(txn, false)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PaymentService) CancelPayment(ctx context.Context, parentID uuid.UUID, req request_models.CancelPaymentRequest) (*response_models.PaymentResponse, error) {

	var resp *response_models.PaymentResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		echo, err := s.checkIdempotency(ctx, repos, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if echo != nil {
			resp = echo
			return nil
		}

		parent, err := s.lockParent(ctx, repos, parentID)
		if err != nil {
			return err
		}

		if parent.Type != db_models.TxnTypeAuthorization {
			return utils.NewValidationError("void requires an authorization, got %s", parent.Type)
		}
		if parent.Status != db_models.TxnStatusCompleted {
			return utils.NewValidationError("authorization is %s, only completed authorizations can be voided", parent.Status)
		}
		if parent.CapturedAmountMinor > 0 {
			return utils.NewValidationError("authorization has been captured, refund the capture instead")
		}

		txn := s.childTransaction(parent, db_models.TxnTypeVoid, parent.AmountMinor, req.IdempotencyKey)
		if err := s.createProcessing(ctx, repos, txn); err != nil {
			return err
		}

		result, err := s.adapter.Void(ctx, derefGatewayRef(parent))
		if err != nil {
			return err
		}

		applyGatewayResult(txn, result)
		if err := repos.Transactions.Update(ctx, txn); err != nil {
			return fmt.Errorf("%w: update void: %v", utils.ErrDatabaseError, err)
		}

		if result.Success {
			parent.Status = db_models.TxnStatusCancelled
			if err := repos.Transactions.Update(ctx, parent); err != nil {
				return fmt.Errorf("%w: update voided authorization: %v", utils.ErrDatabaseError, err)
			}
		}

		resp = toPaymentResponse(txn, false)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *PaymentService) GetTransaction(ctx context.Context, id uuid.UUID) (*response_models.PaymentResponse, error) {

	var resp *response_models.PaymentResponse

	err := s.txManager.Do(ctx, func(repos repositories.Repositories) error {
		txn, err := repos.Transactions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
		}
		if txn == nil {
			return utils.ErrTransactionNotFound
		}
		resp = toPaymentResponse(txn, false)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// checkIdempotency resolves a caller-supplied key before any mutating work:
// no record means proceed, an in-flight record is a conflict, and a settled
// record is echoed back to the caller with no new gateway call.
func (s *PaymentService) checkIdempotency(ctx context.Context, repos repositories.Repositories, key string) (*response_models.PaymentResponse, error) {
	existing, err := repos.Transactions.GetByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: idempotency lookup: %v", utils.ErrDatabaseError, err)
	}
	if existing == nil {
		return nil, nil
	}
	if !existing.Status.IsTerminal() {
		return nil, utils.ErrDuplicateInFlight
	}

	s.logger.Info("idempotency replay",
		zap.String("idempotency_key", key),
		zap.String("transaction_id", existing.ID.String()))
	return toPaymentResponse(existing, true), nil
}

func (s *PaymentService) createProcessing(ctx context.Context, repos repositories.Repositories, txn *db_models.Transaction) error {
	if err := repos.Transactions.Create(ctx, txn); err != nil {
		// Two requests raced past the lookup with the same key; the store's
		// unique constraint lets exactly one through.
		if repositories.IsUniqueViolation(err) {
			return utils.ErrDuplicateInFlight
		}
		return fmt.Errorf("%w: create transaction: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

func (s *PaymentService) lockParent(ctx context.Context, repos repositories.Repositories, parentID uuid.UUID) (*db_models.Transaction, error) {
	parent, err := repos.Transactions.GetByIDForUpdate(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: load parent: %v", utils.ErrDatabaseError, err)
	}
	if parent == nil {
		return nil, utils.ErrTransactionNotFound
	}
	return parent, nil
}

func (s *PaymentService) childTransaction(parent *db_models.Transaction, txnType db_models.TransactionType, amount int64, idempotencyKey string) *db_models.Transaction {
	parentID := parent.ID
	return &db_models.Transaction{
		MerchantReference:   fmt.Sprintf("%.40s-%s-%.8s", parent.MerchantReference, txnType, uuid.NewString()),
		ParentTransactionID: &parentID,
		Type:                txnType,
		Status:              db_models.TxnStatusProcessing,
		InstrumentKind:      parent.InstrumentKind,
		AmountMinor:         amount,
		Currency:            parent.Currency,
		IdempotencyKey:      idempotencyKey,
	}
}

// applyGatewayResult moves a PROCESSING transaction to its terminal state.
// Declines land as FAILED with a reason; they are data, not errors.
func applyGatewayResult(txn *db_models.Transaction, result *gateway.Result) {
	now := time.Now().Unix()
	txn.ProcessedAt = &now

	if len(result.RawPayload) > 0 {
		txn.GatewayPayload = datatypes.JSON(result.RawPayload)
	}
	if result.GatewayRef != "" {
		ref := result.GatewayRef
		txn.GatewayReference = &ref
	}

	if result.Success {
		txn.Status = db_models.TxnStatusCompleted
	} else {
		txn.Status = db_models.TxnStatusFailed
		reason := result.Message
		if reason == "" {
			reason = "declined by gateway"
		}
		txn.FailureReason = &reason
	}
}

func toPaymentResponse(txn *db_models.Transaction, duplicate bool) *response_models.PaymentResponse {
	message := ""
	if txn.FailureReason != nil {
		message = *txn.FailureReason
	}
	return &response_models.PaymentResponse{
		TransactionID:       txn.ID,
		MerchantReference:   txn.MerchantReference,
		GatewayReference:    txn.GatewayReference,
		ParentTransactionID: txn.ParentTransactionID,
		Type:                string(txn.Type),
		Status:              string(txn.Status),
		AmountMinor:         txn.AmountMinor,
		RefundedAmountMinor: txn.RefundedAmountMinor,
		Currency:            txn.Currency,
		Success:             txn.Status != db_models.TxnStatusFailed,
		Duplicate:           duplicate,
		Message:             message,
		ProcessedAt:         txn.ProcessedAt,
	}
}

func derefGatewayRef(txn *db_models.Transaction) string {
	if txn.GatewayReference == nil {
		return ""
	}
	return *txn.GatewayReference
}
