package memory

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var _ ports.BankStore = (*BankStore)(nil) // Ensure compliance

var bankFields = map[string]comparator[*domain.Bank]{
	"code":      byString(func(b *domain.Bank) string { return b.Code }),
	"name":      byString(func(b *domain.Bank) string { return b.Name }),
	"country":   byString(func(b *domain.Bank) string { return b.Country }),
	"createdAt": func(a, b *domain.Bank) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt": func(a, b *domain.Bank) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

// BankStore keeps banks in process memory. The code index is updated under
// the same lock as the rows, so uniqueness holds under concurrent writes.
type BankStore struct {
	mu     sync.RWMutex
	banks  map[uuid.UUID]domain.Bank
	byCode map[string]uuid.UUID
}

// NewBankStore creates an empty store.
func NewBankStore() *BankStore {
	return &BankStore{
		banks:  make(map[uuid.UUID]domain.Bank),
		byCode: make(map[string]uuid.UUID),
	}
}

func (s *BankStore) Create(ctx context.Context, bank *domain.Bank) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.banks[bank.ID]; exists {
		return fmt.Errorf("bank %s already stored", bank.ID)
	}
	if _, taken := s.byCode[bank.Code]; taken {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateBankCode, bank.Code)
	}

	s.banks[bank.ID] = *bank
	s.byCode[bank.Code] = bank.ID
	return nil
}

func (s *BankStore) Update(ctx context.Context, bank *domain.Bank) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.banks[bank.ID]
	if !exists {
		return fmt.Errorf("%w: id %s", domain.ErrBankNotFound, bank.ID)
	}
	if owner, taken := s.byCode[bank.Code]; taken && owner != bank.ID {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateBankCode, bank.Code)
	}

	delete(s.byCode, current.Code)
	s.banks[bank.ID] = *bank
	s.byCode[bank.Code] = bank.ID
	return nil
}

func (s *BankStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bank, ok := s.banks[id]
	if !ok {
		return nil, nil
	}
	return &bank, nil
}

func (s *BankStore) FindByCode(ctx context.Context, code string) (*domain.Bank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[code]
	if !ok {
		return nil, nil
	}
	bank := s.banks[id]
	return &bank, nil
}

func (s *BankStore) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	return s.filter(page, func(*domain.Bank) bool { return true }), nil
}

// FindByCountry matches the country exactly.
func (s *BankStore) FindByCountry(ctx context.Context, country string, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	return s.filter(page, func(b *domain.Bank) bool { return b.Country == country }), nil
}

func (s *BankStore) ExistsByCode(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byCode[code]
	return ok, nil
}

func (s *BankStore) ExistsByCodeExcludingID(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.byCode[code]
	return ok && owner != excludeID, nil
}

func (s *BankStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bank, ok := s.banks[id]
	if !ok {
		return nil
	}
	delete(s.byCode, bank.Code)
	delete(s.banks, id)
	return nil
}

func (s *BankStore) filter(page domain.PageRequest, keep func(*domain.Bank) bool) domain.Page[*domain.Bank] {
	s.mu.RLock()
	matched := make([]*domain.Bank, 0, len(s.banks))
	for _, b := range s.banks {
		bank := b
		if keep(&bank) {
			matched = append(matched, &bank)
		}
	}
	s.mu.RUnlock()

	return paginate(matched, page, bankFields, func(b *domain.Bank) uuid.UUID { return b.ID }, "createdAt")
}
