package services

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ ports.AccountService = (*accountService)(nil) // Ensure compliance

type accountService struct {
	store ports.AccountStore
	banks ports.BankExistenceChecker
	clock ports.Clock
	log   zerolog.Logger
}

// NewAccountService wires the account use cases to their store, the remote
// bank check and a clock.
func NewAccountService(
	store ports.AccountStore,
	banks ports.BankExistenceChecker,
	clock ports.Clock,
	baseLogger *zerolog.Logger,
) ports.AccountService {
	return &accountService{
		store: store,
		banks: banks,
		clock: clock,
		log:   baseLogger.With().Str("component", "account_service").Logger(),
	}
}

// CreateAccount persists a new account once its bank is confirmed and its
// number is free. Nothing is written when any check fails.
func (s *accountService) CreateAccount(ctx context.Context, in domain.AccountInput) (*domain.Account, error) {
	log := s.log.With().Str("bank_id", in.BankID.String()).Str("account_number", in.AccountNumber).Logger()

	// 1. The bank must exist in the bank service
	if !s.banks.BankExists(ctx, in.BankID) {
		log.Info().Msg("Rejected account create: bank not confirmed")
		return nil, fmt.Errorf("%w: id %s", domain.ErrBankNotFound, in.BankID)
	}

	// 2. The number must be globally unique
	taken, err := s.store.ExistsByAccountNumber(ctx, in.AccountNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, in.AccountNumber)
	}

	// 3. Field rules
	if err := validateAccountInput(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusActive
	}

	now := s.clock.Now()
	acct := &domain.Account{
		ID:                uuid.New(),
		AccountNumber:     in.AccountNumber,
		BankID:            in.BankID,
		AccountHolderName: in.AccountHolderName,
		AccountType:       in.AccountType,
		Balance:           *in.Balance,
		Currency:          in.Currency,
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	// The unique index has the last word if another create raced us here.
	if err := s.store.Create(ctx, acct); err != nil {
		return nil, err
	}

	log.Info().Str("account_id", acct.ID.String()).Msg("Account created")
	return acct, nil
}

// GetAccountByID returns the account only when it belongs to bankID.
func (s *accountService) GetAccountByID(ctx context.Context, id, bankID uuid.UUID) (*domain.Account, error) {
	acct, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: id %s", domain.ErrAccountNotFound, id)
	}

	if !acct.BelongsTo(bankID) {
		s.log.Warn().
			Str("account_id", id.String()).
			Str("bank_id", bankID.String()).
			Msg("Isolation check failed")
		return nil, fmt.Errorf("%w: account with id %s does not belong to bank %s", domain.ErrUnauthorizedAccess, id, bankID)
	}
	return acct, nil
}

// GetAccountsByBankID lists only the accounts owned by bankID.
func (s *accountService) GetAccountsByBankID(ctx context.Context, bankID uuid.UUID, page domain.PageRequest) (domain.Page[*domain.Account], error) {
	return s.store.FindByBankID(ctx, bankID, page.Normalize())
}

// UpdateAccount replaces the mutable fields. The owning bank never changes,
// whatever in.BankID says.
func (s *accountService) UpdateAccount(ctx context.Context, id, bankID uuid.UUID, in domain.AccountInput) (*domain.Account, error) {
	acct, err := s.GetAccountByID(ctx, id, bankID)
	if err != nil {
		return nil, err
	}

	if in.AccountNumber != acct.AccountNumber {
		taken, err := s.store.ExistsByAccountNumber(ctx, in.AccountNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccountNumber, in.AccountNumber)
		}
	}

	if err := validateAccountInput(in); err != nil {
		return nil, err
	}

	acct.AccountNumber = in.AccountNumber
	acct.AccountHolderName = in.AccountHolderName
	acct.AccountType = in.AccountType
	acct.Balance = *in.Balance
	acct.Currency = in.Currency
	if in.Status != "" {
		acct.Status = in.Status
	}
	acct.UpdatedAt = laterOf(s.clock.Now(), acct.UpdatedAt)

	if err := s.store.Update(ctx, acct); err != nil {
		return nil, err
	}

	s.log.Info().Str("account_id", id.String()).Msg("Account updated")
	return acct, nil
}

// DeleteAccount removes the account after the same ownership gate as reads.
func (s *accountService) DeleteAccount(ctx context.Context, id, bankID uuid.UUID) error {
	if _, err := s.GetAccountByID(ctx, id, bankID); err != nil {
		return err
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id.String()).Str("bank_id", bankID.String()).Msg("Account deleted")
	return nil
}

// CountByBankID backs the bank service's delete guard.
func (s *accountService) CountByBankID(ctx context.Context, bankID uuid.UUID) (int64, error) {
	return s.store.CountByBankID(ctx, bankID)
}

func (s *accountService) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	return s.store.ExistsByAccountNumber(ctx, accountNumber)
}

func validateAccountInput(in domain.AccountInput) error {
	if strings.TrimSpace(in.AccountNumber) == "" {
		return fmt.Errorf("%w: account number is required", domain.ErrInvalidAccount)
	}
	if err := domain.ValidateBalance(in.Balance); err != nil {
		return err
	}
	if !in.AccountType.Valid() {
		return fmt.Errorf("%w: unknown account type %q", domain.ErrInvalidAccount, in.AccountType)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown account status %q", domain.ErrInvalidAccount, in.Status)
	}
	return nil
}
