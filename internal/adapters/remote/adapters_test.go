package remote

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

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

type MockCountSource struct {
	mock.Mock
}

func (m *MockCountSource) CountByBank(ctx context.Context, bankID uuid.UUID) (int64, error) {
	args := m.Called(ctx, bankID)
	return args.Get(0).(int64), args.Error(1)
}

type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveRemoteCheck(check, outcome string, elapsed time.Duration) {
	m.Called(check, outcome)
}

// --- Tests ---

func TestBankExistenceAdapter(t *testing.T) {
	tests := []struct {
		name    string
		bank    *domain.Bank
		err     error
		want    bool
		outcome string
	}{
		{"found", &domain.Bank{Code: "BOA"}, nil, true, ports.OutcomeFound},
		{"not found", nil, fmt.Errorf("%w: x", domain.ErrBankNotFound), false, ports.OutcomeNotFound},
		{"failure", nil, errors.New("connection refused"), false, ports.OutcomeFailure},
		{"timeout", nil, context.DeadlineExceeded, false, ports.OutcomeFailure},
	}

	nopLogger := zerolog.Nop()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bankID := uuid.New()
			lookup := new(MockBankLookup)
			observer := new(MockObserver)
			lookup.On("GetBank", mock.Anything, bankID).Return(tt.bank, tt.err).Once()
			observer.On("ObserveRemoteCheck", ports.CheckBankExists, tt.outcome).Once()

			adapter := NewBankExistenceAdapter(lookup, observer, &nopLogger)
			if got := adapter.BankExists(testContext(t), bankID); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}

			lookup.AssertExpectations(t)
			observer.AssertExpectations(t)
		})
	}
}

func TestAccountCountAdapter(t *testing.T) {
	nopLogger := zerolog.Nop()

	t.Run("counted", func(t *testing.T) {
		bankID := uuid.New()
		source := new(MockCountSource)
		observer := new(MockObserver)
		source.On("CountByBank", mock.Anything, bankID).Return(int64(2), nil).Once()
		observer.On("ObserveRemoteCheck", ports.CheckAccountCount, ports.OutcomeCounted).Once()

		adapter := NewAccountCountAdapter(source, observer, &nopLogger)
		if got := adapter.CountAccounts(testContext(t), bankID); got != 2 {
			t.Errorf("Expected 2, got %d", got)
		}
		source.AssertExpectations(t)
		observer.AssertExpectations(t)
	})

	t.Run("failure reads as zero", func(t *testing.T) {
		bankID := uuid.New()
		source := new(MockCountSource)
		observer := new(MockObserver)
		source.On("CountByBank", mock.Anything, bankID).Return(int64(0), errors.New("boom")).Once()
		observer.On("ObserveRemoteCheck", ports.CheckAccountCount, ports.OutcomeFailure).Once()

		adapter := NewAccountCountAdapter(source, observer, &nopLogger)
		if got := adapter.CountAccounts(testContext(t), bankID); got != 0 {
			t.Errorf("Expected 0, got %d", got)
		}
		observer.AssertExpectations(t)
	})

	t.Run("nil observer", func(t *testing.T) {
		source := new(MockCountSource)
		source.On("CountByBank", mock.Anything, mock.Anything).Return(int64(1), nil)

		adapter := NewAccountCountAdapter(source, nil, &nopLogger)
		if got := adapter.CountAccounts(testContext(t), uuid.New()); got != 1 {
			t.Errorf("Expected 1, got %d", got)
		}
	})
}
