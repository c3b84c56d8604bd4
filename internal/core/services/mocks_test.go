package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

// MockBankChecker stands in for the remote bank-existence adapter.
type MockBankChecker struct {
	mock.Mock
}

func (m *MockBankChecker) BankExists(ctx context.Context, bankID uuid.UUID) bool {
	args := m.Called(ctx, bankID)
	return args.Bool(0)
}

// MockAccountCounter stands in for the remote account-count adapter.
type MockAccountCounter struct {
	mock.Mock
}

func (m *MockAccountCounter) CountAccounts(ctx context.Context, bankID uuid.UUID) int64 {
	args := m.Called(ctx, bankID)
	return args.Get(0).(int64)
}
