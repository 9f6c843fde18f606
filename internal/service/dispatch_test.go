package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/mocks"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/subacq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestDispatch_CreatePix(t *testing.T) {
	logger := zap.NewNop()

	sub := &model.Subacquirer{ID: 7, Code: "subadqa", BaseURL: "https://subadqa.test"}

	cmd := service.CreatePixCommand{
		OwnerID:         42,
		SubacquirerCode: "subadqa",
		Amount:          decimal.NewFromFloat(150.50),
		PixKey:          "user@example.com",
		PixKeyType:      "email",
		Description:     "order 991",
	}

	t.Run("creates pix transaction and schedules confirmation", func(t *testing.T) {
		mockPixRepo := &mocks.PixTransactionRepository{}
		mockWithdrawRepo := &mocks.WithdrawTransactionRepository{}
		mockSubacquirers := &mocks.SubacquirerService{}
		mockScheduler := &mocks.SchedulerService{}
		mockGateway := &mocks.Gateway{}

		externalID := "EXT-555"

		mockSubacquirers.On("ResolveActive", "subadqa").Return(sub, nil)
		mockSubacquirers.On("GatewayFor", sub).Return(mockGateway)
		mockPixRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockGateway.On("Send", mock.Anything, subacq.OperationPix, mock.Anything).
			Return(subacq.Result{Success: true, ExternalID: &externalID, Raw: []byte(`{"id":"EXT-555"}`)})
		mockPixRepo.On("Update", mock.Anything, mock.MatchedBy(func(tx *model.PixTransaction) bool {
			return tx.Status == model.StatusProcessing && tx.ExternalID != nil && *tx.ExternalID == "EXT-555"
		})).Return(nil)
		mockScheduler.On("ScheduleConfirmation", mock.Anything, model.TransactionTypePix, mock.Anything).
			Return(&model.ConfirmationJob{ID: 1}, nil)

		svc := service.NewDispatchService(mockPixRepo, mockWithdrawRepo, mockSubacquirers, mockScheduler, logger)

		resp, err := svc.CreatePix(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusProcessing), resp.Status)
		assert.True(t, strings.HasPrefix(resp.TransactionID, "PIX-"))
		assert.Equal(t, "150.50", resp.Amount)
		assert.Equal(t, "EXT-555", *resp.ExternalID)

		mockPixRepo.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("rejects non positive amount before persistence", func(t *testing.T) {
		mockPixRepo := &mocks.PixTransactionRepository{}
		mockWithdrawRepo := &mocks.WithdrawTransactionRepository{}
		mockSubacquirers := &mocks.SubacquirerService{}
		mockScheduler := &mocks.SchedulerService{}

		svc := service.NewDispatchService(mockPixRepo, mockWithdrawRepo, mockSubacquirers, mockScheduler, logger)

		invalid := cmd
		invalid.Amount = decimal.Zero

		_, err := svc.CreatePix(context.Background(), invalid)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeValidation, svcErr.Code)
		mockPixRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("marks transaction failed when provider rejects", func(t *testing.T) {
		mockPixRepo := &mocks.PixTransactionRepository{}
		mockWithdrawRepo := &mocks.WithdrawTransactionRepository{}
		mockSubacquirers := &mocks.SubacquirerService{}
		mockScheduler := &mocks.SchedulerService{}
		mockGateway := &mocks.Gateway{}

		mockSubacquirers.On("ResolveActive", "subadqa").Return(sub, nil)
		mockSubacquirers.On("GatewayFor", sub).Return(mockGateway)
		mockPixRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockGateway.On("Send", mock.Anything, subacq.OperationPix, mock.Anything).
			Return(subacq.Result{Success: false, Error: subacq.ErrCodeTimeout})
		mockPixRepo.On("Update", mock.Anything, mock.MatchedBy(func(tx *model.PixTransaction) bool {
			return tx.Status == model.StatusFailed
		})).Return(nil)

		svc := service.NewDispatchService(mockPixRepo, mockWithdrawRepo, mockSubacquirers, mockScheduler, logger)

		_, err := svc.CreatePix(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeProviderError, svcErr.Code)
		mockScheduler.AssertNotCalled(t, "ScheduleConfirmation", mock.Anything, mock.Anything, mock.Anything)
		mockPixRepo.AssertExpectations(t)
	})

	t.Run("fails for unknown subacquirer", func(t *testing.T) {
		mockPixRepo := &mocks.PixTransactionRepository{}
		mockWithdrawRepo := &mocks.WithdrawTransactionRepository{}
		mockSubacquirers := &mocks.SubacquirerService{}
		mockScheduler := &mocks.SchedulerService{}

		mockSubacquirers.On("ResolveActive", "subadqa").
			Return((*model.Subacquirer)(nil), service.ErrSubacquirerNotFound)

		svc := service.NewDispatchService(mockPixRepo, mockWithdrawRepo, mockSubacquirers, mockScheduler, logger)

		_, err := svc.CreatePix(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeSubacquirerUnavailable, svcErr.Code)
		assert.ErrorIs(t, err, service.ErrSubacquirerNotFound)
	})

	t.Run("returns database error when persistence fails", func(t *testing.T) {
		mockPixRepo := &mocks.PixTransactionRepository{}
		mockWithdrawRepo := &mocks.WithdrawTransactionRepository{}
		mockSubacquirers := &mocks.SubacquirerService{}
		mockScheduler := &mocks.SchedulerService{}

		mockSubacquirers.On("ResolveActive", "subadqa").Return(sub, nil)
		mockPixRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection lost"))

		svc := service.NewDispatchService(mockPixRepo, mockWithdrawRepo, mockSubacquirers, mockScheduler, logger)

		_, err := svc.CreatePix(context.Background(), cmd)

		var svcErr service.Error
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, service.ErrCodeDatabase, svcErr.Code)
	})
}

func TestDispatch_CreateWithdraw(t *testing.T) {
	logger := zap.NewNop()

	sub := &model.Subacquirer{ID: 9, Code: "subadqb", BaseURL: "https://subadqb.test"}

	cmd := service.CreateWithdrawCommand{
		OwnerID:         42,
		SubacquirerCode: "subadqb",
		Amount:          decimal.NewFromInt(300),
		BankCode:        "341",
		Agency:          "0001",
		Account:         "123456-7",
		AccountType:     "checking",
		HolderName:      "Maria Souza",
		HolderDocument:  "12345678901",
	}

	t.Run("creates withdraw transaction and schedules confirmation", func(t *testing.T) {
		mockPixRepo := &mocks.PixTransactionRepository{}
		mockWithdrawRepo := &mocks.WithdrawTransactionRepository{}
		mockSubacquirers := &mocks.SubacquirerService{}
		mockScheduler := &mocks.SchedulerService{}
		mockGateway := &mocks.Gateway{}

		mockSubacquirers.On("ResolveActive", "subadqb").Return(sub, nil)
		mockSubacquirers.On("GatewayFor", sub).Return(mockGateway)
		mockWithdrawRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockGateway.On("Send", mock.Anything, subacq.OperationWithdraw, mock.Anything).
			Return(subacq.Result{Success: true, Raw: []byte(`{"accepted":true}`)})
		mockWithdrawRepo.On("Update", mock.Anything, mock.MatchedBy(func(tx *model.WithdrawTransaction) bool {
			return tx.Status == model.StatusProcessing
		})).Return(nil)
		mockScheduler.On("ScheduleConfirmation", mock.Anything, model.TransactionTypeWithdraw, mock.Anything).
			Return(&model.ConfirmationJob{ID: 2}, nil)

		svc := service.NewDispatchService(mockPixRepo, mockWithdrawRepo, mockSubacquirers, mockScheduler, logger)

		resp, err := svc.CreateWithdraw(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusProcessing), resp.Status)
		assert.True(t, strings.HasPrefix(resp.TransactionID, "WD-"))
		assert.Nil(t, resp.ExternalID)

		mockWithdrawRepo.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("still succeeds when scheduling fails", func(t *testing.T) {
		mockPixRepo := &mocks.PixTransactionRepository{}
		mockWithdrawRepo := &mocks.WithdrawTransactionRepository{}
		mockSubacquirers := &mocks.SubacquirerService{}
		mockScheduler := &mocks.SchedulerService{}
		mockGateway := &mocks.Gateway{}

		mockSubacquirers.On("ResolveActive", "subadqb").Return(sub, nil)
		mockSubacquirers.On("GatewayFor", sub).Return(mockGateway)
		mockWithdrawRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockGateway.On("Send", mock.Anything, subacq.OperationWithdraw, mock.Anything).
			Return(subacq.Result{Success: true, Raw: []byte(`{}`)})
		mockWithdrawRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		mockScheduler.On("ScheduleConfirmation", mock.Anything, model.TransactionTypeWithdraw, mock.Anything).
			Return((*model.ConfirmationJob)(nil), service.ErrDatabase)

		svc := service.NewDispatchService(mockPixRepo, mockWithdrawRepo, mockSubacquirers, mockScheduler, logger)

		resp, err := svc.CreateWithdraw(context.Background(), cmd)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusProcessing), resp.Status)
	})
}
