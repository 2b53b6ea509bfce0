package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/darkkaiser/linkcompra-server/internal/service/contract"
)

// MockNotificationSender contract.NotificationSender의 Mock 구현체입니다.
type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Notify(ctx context.Context, n contract.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyDefault(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyDefaultWithError(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockNotificationSender) Health() error {
	args := m.Called()
	return args.Error(0)
}
