package services

import (
	"BankAccounts/internal/adapters/memory"
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"BankAccounts/internal/shared/clock"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

func newBankService(t *testing.T, counter *MockAccountCounter) (ports.BankService, *clock.Manual) {
	t.Helper()
	nopLogger := zerolog.Nop()
	clk := clock.NewManual(t0)
	return NewBankService(memory.NewBankStore(), counter, clk, &nopLogger), clk
}

func bankInput(code string) *domain.Bank {
	return &domain.Bank{Code: code, Name: "Test Bank", Country: "Argentina"}
}

func TestCreateBank(t *testing.T) {
	svc, _ := newBankService(t, new(MockAccountCounter))

	bank, err := svc.CreateBank(testContext(t), bankInput(" bank001 "))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if bank.Code != "BANK001" {
		t.Errorf("Expected normalized code BANK001, got %q", bank.Code)
	}
	if !bank.CreatedAt.Equal(t0) {
		t.Errorf("Expected clock timestamp, got %v", bank.CreatedAt)
	}

	// Case-insensitive duplicate
	_, err = svc.CreateBank(testContext(t), bankInput("Bank001"))
	if !errors.Is(err, domain.ErrDuplicateBankCode) {
		t.Fatalf("Expected ErrDuplicateBankCode, got %v", err)
	}

	exists, _ := svc.ExistsByCode(testContext(t), "bank001")
	if !exists {
		t.Error("ExistsByCode should normalize")
	}
	found, _ := svc.FindByCode(testContext(t), "bank001")
	if found == nil || found.ID != bank.ID {
		t.Errorf("FindByCode should normalize, got %v", found)
	}
}

func TestCreateBank_Validation(t *testing.T) {
	svc, _ := newBankService(t, new(MockAccountCounter))

	for _, b := range []*domain.Bank{
		{Code: " ", Name: "N", Country: "C"},
		{Code: "X", Name: "", Country: "C"},
		{Code: "X", Name: "N", Country: "  "},
	} {
		if _, err := svc.CreateBank(testContext(t), b); !errors.Is(err, domain.ErrInvalidBank) {
			t.Errorf("Expected ErrInvalidBank for %+v, got %v", b, err)
		}
	}
}

func TestCreateBank_ConcurrentSameCode(t *testing.T) {
	svc, _ := newBankService(t, new(MockAccountCounter))

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CreateBank(testContext(t), bankInput("RACE")); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrDuplicateBankCode) {
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("Expected exactly one winner, got %d", wins)
	}
}

func TestUpdateBank(t *testing.T) {
	svc, clk := newBankService(t, new(MockAccountCounter))
	a, _ := svc.CreateBank(testContext(t), bankInput("AAA"))
	svc.CreateBank(testContext(t), bankInput("BBB"))

	// Code taken by another bank
	if _, err := svc.UpdateBank(testContext(t), a.ID, bankInput("bbb")); !errors.Is(err, domain.ErrDuplicateBankCode) {
		t.Fatalf("Expected ErrDuplicateBankCode, got %v", err)
	}

	clk.Advance(time.Hour)
	patch := bankInput("ccc")
	patch.Name = "Renamed"
	updated, err := svc.UpdateBank(testContext(t), a.ID, patch)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Code != "CCC" || updated.Name != "Renamed" {
		t.Errorf("Update not applied: %+v", updated)
	}
	if !updated.UpdatedAt.Equal(t0.Add(time.Hour)) || !updated.CreatedAt.Equal(t0) {
		t.Errorf("Unexpected timestamps %v / %v", updated.CreatedAt, updated.UpdatedAt)
	}

	// Keeping its own code is not a conflict
	if _, err := svc.UpdateBank(testContext(t), a.ID, bankInput("CCC")); err != nil {
		t.Errorf("Self code update failed: %v", err)
	}

	if _, err := svc.UpdateBank(testContext(t), uuid.New(), bankInput("DDD")); !errors.Is(err, domain.ErrBankNotFound) {
		t.Errorf("Expected ErrBankNotFound, got %v", err)
	}
}

func TestDeleteBank(t *testing.T) {
	t.Run("blocked by accounts", func(t *testing.T) {
		counter := new(MockAccountCounter)
		svc, _ := newBankService(t, counter)
		bank, _ := svc.CreateBank(testContext(t), bankInput("BANK001"))
		counter.On("CountAccounts", mock.Anything, bank.ID).Return(int64(1)).Once()

		err := svc.DeleteBank(testContext(t), bank.ID)
		var hasAccounts *domain.BankHasAccountsError
		if !errors.As(err, &hasAccounts) || hasAccounts.Count != 1 {
			t.Fatalf("Expected BankHasAccountsError with count 1, got %v", err)
		}
		if !errors.Is(err, domain.ErrBankHasAccounts) {
			t.Error("Expected errors.Is match on ErrBankHasAccounts")
		}
		if _, err := svc.GetBankByID(testContext(t), bank.ID); err != nil {
			t.Errorf("Bank should still exist: %v", err)
		}
	})

	t.Run("zero accounts", func(t *testing.T) {
		counter := new(MockAccountCounter)
		svc, _ := newBankService(t, counter)
		bank, _ := svc.CreateBank(testContext(t), bankInput("BANK001"))
		counter.On("CountAccounts", mock.Anything, bank.ID).Return(int64(0)).Once()

		if err := svc.DeleteBank(testContext(t), bank.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := svc.GetBankByID(testContext(t), bank.ID); !errors.Is(err, domain.ErrBankNotFound) {
			t.Errorf("Expected ErrBankNotFound, got %v", err)
		}
		counter.AssertExpectations(t)
	})

	t.Run("unknown bank skips the remote check", func(t *testing.T) {
		counter := new(MockAccountCounter)
		svc, _ := newBankService(t, counter)

		if err := svc.DeleteBank(testContext(t), uuid.New()); !errors.Is(err, domain.ErrBankNotFound) {
			t.Fatalf("Expected ErrBankNotFound, got %v", err)
		}
		counter.AssertNotCalled(t, "CountAccounts", mock.Anything, mock.Anything)
	})
}

func TestListBanks(t *testing.T) {
	svc, clk := newBankService(t, new(MockAccountCounter))
	for _, b := range []*domain.Bank{
		{Code: "A1", Name: "Zeta", Country: "Argentina"},
		{Code: "A2", Name: "Alpha", Country: "Argentina"},
		{Code: "A3", Name: "Lower", Country: "argentina"},
		{Code: "C1", Name: "Mid", Country: "Chile"},
	} {
		clk.Advance(time.Second)
		if _, err := svc.CreateBank(testContext(t), b); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, _ := svc.GetAllBanks(testContext(t), domain.PageRequest{Page: 0, Size: 0})
	if all.Size != domain.DefaultPageSize || all.TotalElements != 4 {
		t.Errorf("Unexpected page: %+v", all)
	}

	ar, _ := svc.GetBanksByCountry(testContext(t), "Argentina", domain.PageRequest{
		Size: 10,
		Sort: []domain.SortOrder{{Field: "name"}},
	})
	if len(ar.Content) != 2 || ar.Content[0].Name != "Alpha" {
		t.Errorf("Expected two Argentine banks sorted by name, got %+v", ar.Content)
	}
}
