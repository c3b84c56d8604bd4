package redis

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	bankKeyPrefix   = "bank:"
	bankGuardPrefix = "bank:guard:"
)

var _ ports.BankStore = (*CachedBankStore)(nil) // Ensure compliance

// bankCache is the part of ViewCache the store uses.
type bankCache interface {
	Get(ctx context.Context, key string) (*domain.Bank, bool)
	SetUnlessGuarded(ctx context.Context, key, guard string, value *domain.Bank)
	Invalidate(ctx context.Context, key, guard string, guardTTL time.Duration)
}

// CachedBankStore serves FindByID from Redis and falls through to the
// wrapped store on a miss. Every write to a bank drops its entry and blocks
// refills for guardTTL, which must cover the longest read in flight.
// Account counts are never cached.
type CachedBankStore struct {
	ports.BankStore
	cache    bankCache
	guardTTL time.Duration
}

// NewCachedBankStore wraps next with a read cache.
func NewCachedBankStore(next ports.BankStore, cache *ViewCache[domain.Bank], guardTTL time.Duration) *CachedBankStore {
	return &CachedBankStore{BankStore: next, cache: cache, guardTTL: guardTTL}
}

func bankKey(id uuid.UUID) string {
	return bankKeyPrefix + id.String()
}

func bankGuard(id uuid.UUID) string {
	return bankGuardPrefix + id.String()
}

func (s *CachedBankStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	if bank, ok := s.cache.Get(ctx, bankKey(id)); ok {
		return bank, nil
	}

	bank, err := s.BankStore.FindByID(ctx, id)
	if err != nil || bank == nil {
		return bank, err
	}

	// Warm the cache
	s.cache.SetUnlessGuarded(ctx, bankKey(id), bankGuard(id), bank)
	return bank, nil
}

func (s *CachedBankStore) Update(ctx context.Context, bank *domain.Bank) error {
	err := s.BankStore.Update(ctx, bank)
	s.cache.Invalidate(ctx, bankKey(bank.ID), bankGuard(bank.ID), s.guardTTL)
	return err
}

func (s *CachedBankStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := s.BankStore.DeleteByID(ctx, id)
	s.cache.Invalidate(ctx, bankKey(id), bankGuard(id), s.guardTTL)
	return err
}
