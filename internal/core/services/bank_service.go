package services

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ ports.BankService = (*bankService)(nil) // Ensure compliance

type bankService struct {
	store    ports.BankStore
	accounts ports.AccountCounter
	clock    ports.Clock
	log      zerolog.Logger
}

// NewBankService wires the bank use cases to their store, the remote
// account count and a clock.
func NewBankService(
	store ports.BankStore,
	accounts ports.AccountCounter,
	clock ports.Clock,
	baseLogger *zerolog.Logger,
) ports.BankService {
	return &bankService{
		store:    store,
		accounts: accounts,
		clock:    clock,
		log:      baseLogger.With().Str("component", "bank_service").Logger(),
	}
}

// CreateBank normalizes the code, checks it is free and persists the bank.
func (s *bankService) CreateBank(ctx context.Context, bank *domain.Bank) (*domain.Bank, error) {
	code := domain.NormalizeBankCode(bank.Code)
	if err := validateBank(code, bank); err != nil {
		return nil, err
	}

	taken, err := s.store.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateBankCode, code)
	}

	now := s.clock.Now()
	created := &domain.Bank{
		ID:        uuid.New(),
		Code:      code,
		Name:      bank.Name,
		Country:   bank.Country,
		Address:   bank.Address,
		Phone:     bank.Phone,
		Email:     bank.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique index on code settles concurrent creates.
	if err := s.store.Create(ctx, created); err != nil {
		return nil, err
	}

	s.log.Info().Str("bank_id", created.ID.String()).Str("code", code).Msg("Bank created")
	return created, nil
}

// GetBankByID fails with ErrBankNotFound when the id is unknown.
func (s *bankService) GetBankByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	bank, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bank == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrBankNotFound, id)
	}
	return bank, nil
}

func (s *bankService) GetAllBanks(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	return s.store.FindAll(ctx, page.Normalize())
}

func (s *bankService) GetBanksByCountry(ctx context.Context, country string, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	return s.store.FindByCountry(ctx, country, page.Normalize())
}

// UpdateBank replaces the mutable fields. A changed code must stay unique.
func (s *bankService) UpdateBank(ctx context.Context, id uuid.UUID, patch *domain.Bank) (*domain.Bank, error) {
	bank, err := s.GetBankByID(ctx, id)
	if err != nil {
		return nil, err
	}

	code := domain.NormalizeBankCode(patch.Code)
	if err := validateBank(code, patch); err != nil {
		return nil, err
	}

	if code != bank.Code {
		taken, err := s.store.ExistsByCodeExcludingID(ctx, code, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateBankCode, code)
		}
		bank.Code = code
	}

	bank.Name = patch.Name
	bank.Country = patch.Country
	bank.Address = patch.Address
	bank.Phone = patch.Phone
	bank.Email = patch.Email
	bank.UpdatedAt = laterOf(s.clock.Now(), bank.UpdatedAt)

	if err := s.store.Update(ctx, bank); err != nil {
		return nil, err
	}

	s.log.Info().Str("bank_id", id.String()).Msg("Bank updated")
	return bank, nil
}

// DeleteBank removes a bank only when the account service reports no
// accounts for it. The count is taken before the delete and is not atomic
// with it.
func (s *bankService) DeleteBank(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetBankByID(ctx, id); err != nil {
		return err
	}

	count := s.accounts.CountAccounts(ctx, id)
	if count > 0 {
		s.log.Info().Str("bank_id", id.String()).Int64("account_count", count).Msg("Rejected bank delete: accounts still reference it")
		return &domain.BankHasAccountsError{BankID: id, Count: count}
	}

	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("bank_id", id.String()).Msg("Bank deleted")
	return nil
}

func (s *bankService) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return s.store.ExistsByCode(ctx, domain.NormalizeBankCode(code))
}

func (s *bankService) FindByCode(ctx context.Context, code string) (*domain.Bank, error) {
	return s.store.FindByCode(ctx, domain.NormalizeBankCode(code))
}

func validateBank(code string, bank *domain.Bank) error {
	switch {
	case code == "":
		return fmt.Errorf("%w: code is required", domain.ErrInvalidBank)
	case strings.TrimSpace(bank.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidBank)
	case strings.TrimSpace(bank.Country) == "":
		return fmt.Errorf("%w: country is required", domain.ErrInvalidBank)
	}
	return nil
}

// laterOf keeps updated timestamps from moving backwards.
func laterOf(now, previous time.Time) time.Time {
	if now.Before(previous) {
		return previous
	}
	return now
}
