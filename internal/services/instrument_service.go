package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"payflow/internal/models/db_models"
	"payflow/internal/models/request_models"
	"payflow/internal/models/response_models"
	"payflow/internal/repositories"
	"payflow/pkg/utils"
)

type InstrumentServiceInterface interface {
	CreateInstrument(ctx context.Context, req request_models.CreateInstrumentRequest) (*response_models.PaymentInstrumentResponse, error)
	GetInstrumentsByCustomer(ctx context.Context, customerID uuid.UUID) ([]response_models.PaymentInstrumentResponse, error)
	DeactivateInstrument(ctx context.Context, id uuid.UUID) error
}

func NewInstrumentService(instrumentRepo repositories.IInstrumentRepository, logger *zap.Logger) InstrumentServiceInterface {
	return &InstrumentService{
		instrumentRepo: instrumentRepo,
		logger:         logger,
	}
}

type InstrumentService struct {
	instrumentRepo repositories.IInstrumentRepository
	logger         *zap.Logger
}

func (s *InstrumentService) CreateInstrument(ctx context.Context, req request_models.CreateInstrumentRequest) (*response_models.PaymentInstrumentResponse, error) {

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, utils.NewValidationError("invalid customer_id")
	}

	instrument := &db_models.PaymentInstrument{
		CustomerID:  customerID,
		Kind:        db_models.InstrumentKind(req.Kind),
		Token:       req.Token,
		LastFour:    req.LastFour,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		IsActive:    true,
		IsDefault:   req.IsDefault,
	}

	if err := s.instrumentRepo.Create(ctx, instrument); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.ErrDuplicateName
		}
		return nil, fmt.Errorf("%w: create instrument: %v", utils.ErrDatabaseError, err)
	}

	s.logger.Info("instrument vaulted",
		zap.String("instrument_id", instrument.ID.String()),
		zap.String("kind", string(instrument.Kind)))

	return toInstrumentResponse(instrument), nil
}

func (s *InstrumentService) GetInstrumentsByCustomer(ctx context.Context, customerID uuid.UUID) ([]response_models.PaymentInstrumentResponse, error) {

	instruments, err := s.instrumentRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	result := make([]response_models.PaymentInstrumentResponse, 0, len(instruments))
	for i := range instruments {
		result = append(result, *toInstrumentResponse(&instruments[i]))
	}

	return result, nil
}

func (s *InstrumentService) DeactivateInstrument(ctx context.Context, id uuid.UUID) error {

	instrument, err := s.instrumentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if instrument == nil {
		return utils.ErrInstrumentNotFound
	}

	instrument.IsActive = false
	if err := s.instrumentRepo.Update(ctx, instrument); err != nil {
		return fmt.Errorf("%w: deactivate instrument: %v", utils.ErrDatabaseError, err)
	}

	return nil
}

func toInstrumentResponse(instrument *db_models.PaymentInstrument) *response_models.PaymentInstrumentResponse {
	return &response_models.PaymentInstrumentResponse{
		ID:          instrument.ID,
		CustomerID:  instrument.CustomerID,
		Kind:        string(instrument.Kind),
		LastFour:    instrument.LastFour,
		ExpiryMonth: instrument.ExpiryMonth,
		ExpiryYear:  instrument.ExpiryYear,
		IsActive:    instrument.IsActive,
		IsDefault:   instrument.IsDefault,
	}
}
