package memory

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var _ ports.AccountStore = (*AccountStore)(nil) // Ensure compliance

var accountFields = map[string]comparator[*domain.Account]{
	"accountNumber":     byString(func(a *domain.Account) string { return a.AccountNumber }),
	"accountHolderName": byString(func(a *domain.Account) string { return a.AccountHolderName }),
	"accountType":       byString(func(a *domain.Account) string { return string(a.AccountType) }),
	"currency":          byString(func(a *domain.Account) string { return a.Currency }),
	"status":            byString(func(a *domain.Account) string { return string(a.Status) }),
	"balance":           func(a, b *domain.Account) int { return a.Balance.Cmp(b.Balance) },
	"createdAt":         func(a, b *domain.Account) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt":         func(a, b *domain.Account) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

// AccountStore keeps accounts in process memory with a unique index on
// account number and a per-bank index for isolation-scoped listing.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]domain.Account
	byNumber map[string]uuid.UUID
	byBank   map[uuid.UUID]map[uuid.UUID]struct{}
}

// NewAccountStore creates an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[uuid.UUID]domain.Account),
		byNumber: make(map[string]uuid.UUID),
		byBank:   make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (s *AccountStore) Create(ctx context.Context, acct *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[acct.ID]; exists {
		return fmt.Errorf("account %s already stored", acct.ID)
	}
	if _, taken := s.byNumber[acct.AccountNumber]; taken {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, acct.AccountNumber)
	}

	s.accounts[acct.ID] = *acct
	s.byNumber[acct.AccountNumber] = acct.ID
	if s.byBank[acct.BankID] == nil {
		s.byBank[acct.BankID] = make(map[uuid.UUID]struct{})
	}
	s.byBank[acct.BankID][acct.ID] = struct{}{}
	return nil
}

// Update keeps the stored bank_id regardless of acct.BankID.
func (s *AccountStore) Update(ctx context.Context, acct *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.accounts[acct.ID]
	if !exists {
		return fmt.Errorf("%w: id %s", domain.ErrAccountNotFound, acct.ID)
	}
	if owner, taken := s.byNumber[acct.AccountNumber]; taken && owner != acct.ID {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, acct.AccountNumber)
	}

	updated := *acct
	updated.BankID = current.BankID
	updated.CreatedAt = current.CreatedAt

	delete(s.byNumber, current.AccountNumber)
	s.accounts[acct.ID] = updated
	s.byNumber[updated.AccountNumber] = acct.ID
	return nil
}

func (s *AccountStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &acct, nil
}

func (s *AccountStore) FindByBankID(ctx context.Context, bankID uuid.UUID, page domain.PageRequest) (domain.Page[*domain.Account], error) {
	s.mu.RLock()
	ids := s.byBank[bankID]
	matched := make([]*domain.Account, 0, len(ids))
	for id := range ids {
		acct := s.accounts[id]
		matched = append(matched, &acct)
	}
	s.mu.RUnlock()

	return paginate(matched, page, accountFields, func(a *domain.Account) uuid.UUID { return a.ID }, "createdAt"), nil
}

func (s *AccountStore) CountByBankID(ctx context.Context, bankID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.byBank[bankID])), nil
}

func (s *AccountStore) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byNumber[accountNumber]
	return ok, nil
}

func (s *AccountStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[id]
	if !ok {
		return nil
	}
	delete(s.byNumber, acct.AccountNumber)
	delete(s.byBank[acct.BankID], id)
	if len(s.byBank[acct.BankID]) == 0 {
		delete(s.byBank, acct.BankID)
	}
	delete(s.accounts, id)
	return nil
}
