package mocks

import (
	"context"

	"github.com/dayvsonmarques/sub-acquirer-payments/pkg/subacq"
	"github.com/stretchr/testify/mock"
)

type Gateway struct {
	mock.Mock
}

func (m *Gateway) Send(ctx context.Context, op subacq.Operation, body map[string]any) subacq.Result {
	args := m.Called(ctx, op, body)
	return args.Get(0).(subacq.Result)
}
