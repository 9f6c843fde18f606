package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type Locker struct {
	mock.Mock
}

func (m *Locker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *Locker) Release(ctx context.Context, key string, token string) error {
	args := m.Called(ctx, key, token)
	return args.Error(0)
}
