package ports

import (
	"BankAccounts/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// AccountStore defines the persistence operations for Accounts.
// Lookups return (nil, nil) when nothing matches.
type AccountStore interface {
	// Create inserts a new account. A taken number yields domain.ErrDuplicateAccountNumber.
	Create(ctx context.Context, acct *domain.Account) error

	// Update overwrites the mutable columns. bank_id is never written.
	Update(ctx context.Context, acct *domain.Account) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	FindByBankID(ctx context.Context, bankID uuid.UUID, page domain.PageRequest) (domain.Page[*domain.Account], error)

	// CountByBankID reads the store directly; never cached.
	CountByBankID(ctx context.Context, bankID uuid.UUID) (int64, error)

	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// BankExistenceChecker asks the bank service whether a bank exists.
// Implementations absorb every remote failure and report false.
type BankExistenceChecker interface {
	BankExists(ctx context.Context, bankID uuid.UUID) bool
}

// AccountService is the inbound port for account use cases.
// Every call that names an account also names the bank it must belong to.
type AccountService interface {
	CreateAccount(ctx context.Context, in domain.AccountInput) (*domain.Account, error)
	GetAccountByID(ctx context.Context, id, bankID uuid.UUID) (*domain.Account, error)
	GetAccountsByBankID(ctx context.Context, bankID uuid.UUID, page domain.PageRequest) (domain.Page[*domain.Account], error)
	UpdateAccount(ctx context.Context, id, bankID uuid.UUID, in domain.AccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id, bankID uuid.UUID) error
	CountByBankID(ctx context.Context, bankID uuid.UUID) (int64, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
}
