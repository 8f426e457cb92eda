package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payflow/internal/models/db_models"
	"payflow/internal/models/request_models"
	"payflow/internal/repositories/mocks"
	"payflow/pkg/utils"
)

func TestCreateInstrument(t *testing.T) {
	repo := mocks.NewMockInstrumentRepository()
	svc := NewInstrumentService(repo, zap.NewNop())
	ctx := context.Background()

	customerID := uuid.New()
	var saved *db_models.PaymentInstrument
	repo.On("Create", ctx, mock.AnythingOfType("*db_models.PaymentInstrument")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*db_models.PaymentInstrument) }).
		Return(nil)

	resp, err := svc.CreateInstrument(ctx, request_models.CreateInstrumentRequest{
		CustomerID:  customerID.String(),
		Kind:        "card",
		Token:       "tok_visa_4242",
		LastFour:    "4242",
		ExpiryMonth: 12,
		ExpiryYear:  2027,
	})

	require.NoError(t, err)
	assert.Equal(t, customerID, resp.CustomerID)
	assert.True(t, resp.IsActive)

	require.NotNil(t, saved)
	assert.Equal(t, "tok_visa_4242", saved.Token)
	assert.Equal(t, db_models.InstrumentCard, saved.Kind)
}

func TestCreateInstrument_BadCustomerIDRejected(t *testing.T) {
	repo := mocks.NewMockInstrumentRepository()
	svc := NewInstrumentService(repo, zap.NewNop())

	_, err := svc.CreateInstrument(context.Background(), request_models.CreateInstrumentRequest{
		CustomerID: "not-a-uuid",
		Kind:       "card",
		Token:      "tok_1",
	})

	assert.True(t, utils.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeactivateInstrument_NotFound(t *testing.T) {
	repo := mocks.NewMockInstrumentRepository()
	svc := NewInstrumentService(repo, zap.NewNop())
	ctx := context.Background()

	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(nil, nil)

	err := svc.DeactivateInstrument(ctx, id)
	assert.ErrorIs(t, err, utils.ErrInstrumentNotFound)
}
