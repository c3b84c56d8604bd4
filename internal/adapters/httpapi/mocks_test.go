package httpapi

import (
	"BankAccounts/internal/core/domain"
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockBankService struct {
	mock.Mock
}

func (m *MockBankService) CreateBank(ctx context.Context, bank *domain.Bank) (*domain.Bank, error) {
	args := m.Called(ctx, bank)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankService) GetBankByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankService) GetAllBanks(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	args := m.Called(ctx, page)
	return args.Get(0).(domain.Page[*domain.Bank]), args.Error(1)
}

func (m *MockBankService) GetBanksByCountry(ctx context.Context, country string, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	args := m.Called(ctx, country, page)
	return args.Get(0).(domain.Page[*domain.Bank]), args.Error(1)
}

func (m *MockBankService) UpdateBank(ctx context.Context, id uuid.UUID, patch *domain.Bank) (*domain.Bank, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

func (m *MockBankService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBankService) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockBankService) FindByCode(ctx context.Context, code string) (*domain.Bank, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

type MockBankLookup struct {
	mock.Mock
}

func (m *MockBankLookup) GetBank(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bank), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, in domain.AccountInput) (*domain.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, id, bankID uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByBankID(ctx context.Context, bankID uuid.UUID, page domain.PageRequest) (domain.Page[*domain.Account], error) {
	args := m.Called(ctx, bankID, page)
	return args.Get(0).(domain.Page[*domain.Account]), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, id, bankID uuid.UUID, in domain.AccountInput) (*domain.Account, error) {
	args := m.Called(ctx, id, bankID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, id, bankID uuid.UUID) error {
	args := m.Called(ctx, id, bankID)
	return args.Error(0)
}

func (m *MockAccountService) CountByBankID(ctx context.Context, bankID uuid.UUID) (int64, error) {
	args := m.Called(ctx, bankID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}
