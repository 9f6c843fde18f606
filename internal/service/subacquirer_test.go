package service_test

import (
	"errors"
	"testing"

	"github.com/dayvsonmarques/sub-acquirer-payments/internal/mocks"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/repository"
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

func TestSubacquirerService_ResolveActive(t *testing.T) {
	logger := zap.NewNop()

	t.Run("returns active subacquirer", func(t *testing.T) {
		mockRepo := &mocks.SubacquirerRepository{}
		sub := &model.Subacquirer{ID: 7, Code: "subadqa", IsActive: true}

		mockRepo.On("GetActiveByCode", "subadqa").Return(sub, nil)

		svc := service.NewSubacquirerService(mockRepo, logger)

		got, err := svc.ResolveActive("subadqa")

		assert.NoError(t, err)
		assert.Equal(t, sub, got)
	})

	t.Run("distinguishes inactive from unknown", func(t *testing.T) {
		mockRepo := &mocks.SubacquirerRepository{}

		mockRepo.On("GetActiveByCode", "subadqb").
			Return((*model.Subacquirer)(nil), repository.ErrSubacquirerNotFound)
		mockRepo.On("GetByCode", "subadqb").
			Return(&model.Subacquirer{ID: 8, Code: "subadqb", IsActive: false}, nil)

		svc := service.NewSubacquirerService(mockRepo, logger)

		_, err := svc.ResolveActive("subadqb")

		assert.ErrorIs(t, err, service.ErrSubacquirerInactive)
	})

	t.Run("returns not found for unknown code", func(t *testing.T) {
		mockRepo := &mocks.SubacquirerRepository{}

		mockRepo.On("GetActiveByCode", "ghost").
			Return((*model.Subacquirer)(nil), repository.ErrSubacquirerNotFound)
		mockRepo.On("GetByCode", "ghost").
			Return((*model.Subacquirer)(nil), repository.ErrSubacquirerNotFound)

		svc := service.NewSubacquirerService(mockRepo, logger)

		_, err := svc.ResolveActive("ghost")

		assert.ErrorIs(t, err, service.ErrSubacquirerNotFound)
	})

	t.Run("maps repository failures to database error", func(t *testing.T) {
		mockRepo := &mocks.SubacquirerRepository{}

		mockRepo.On("GetActiveByCode", "subadqa").
			Return((*model.Subacquirer)(nil), errors.New("connection lost"))

		svc := service.NewSubacquirerService(mockRepo, logger)

		_, err := svc.ResolveActive("subadqa")

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestSubacquirerService_GatewayFor(t *testing.T) {
	logger := zap.NewNop()

	t.Run("builds gateway from stored settings", func(t *testing.T) {
		mockRepo := &mocks.SubacquirerRepository{}
		svc := service.NewSubacquirerService(mockRepo, logger)

		sub := &model.Subacquirer{
			ID:      7,
			Code:    "subadqa",
			BaseURL: "https://subadqa.test",
			Config:  datatypes.JSON(`{"timeout_seconds": 10, "max_retries": 2}`),
		}

		assert.NotNil(t, svc.GatewayFor(sub))
	})

	t.Run("falls back to defaults on malformed config", func(t *testing.T) {
		mockRepo := &mocks.SubacquirerRepository{}
		svc := service.NewSubacquirerService(mockRepo, logger)

		sub := &model.Subacquirer{
			ID:      7,
			Code:    "subadqa",
			BaseURL: "https://subadqa.test",
			Config:  datatypes.JSON(`not json`),
		}

		assert.NotNil(t, svc.GatewayFor(sub))
	})
}
