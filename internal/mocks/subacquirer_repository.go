package mocks

import (
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/stretchr/testify/mock"
)

type SubacquirerRepository struct {
	mock.Mock
}

func (m *SubacquirerRepository) GetByID(id int64) (*model.Subacquirer, error) {
	args := m.Called(id)
	return args.Get(0).(*model.Subacquirer), args.Error(1)
}

func (m *SubacquirerRepository) GetByCode(code string) (*model.Subacquirer, error) {
	args := m.Called(code)
	return args.Get(0).(*model.Subacquirer), args.Error(1)
}

func (m *SubacquirerRepository) GetActiveByCode(code string) (*model.Subacquirer, error) {
	args := m.Called(code)
	return args.Get(0).(*model.Subacquirer), args.Error(1)
}
