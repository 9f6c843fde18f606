package mocks

import (
	"github.com/dayvsonmarques/sub-acquirer-payments/internal/model"
	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/subacq"
	"github.com/stretchr/testify/mock"
)

type SubacquirerService struct {
	mock.Mock
}

func (m *SubacquirerService) ResolveActive(code string) (*model.Subacquirer, error) {
	args := m.Called(code)
	return args.Get(0).(*model.Subacquirer), args.Error(1)
}

func (m *SubacquirerService) Resolve(code string) (*model.Subacquirer, error) {
	args := m.Called(code)
	return args.Get(0).(*model.Subacquirer), args.Error(1)
}

func (m *SubacquirerService) GatewayFor(sub *model.Subacquirer) subacq.Gateway {
	args := m.Called(sub)
	return args.Get(0).(subacq.Gateway)
}
