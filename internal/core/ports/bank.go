package ports

import (
	"BankAccounts/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// BankStore defines the persistence operations for Banks.
// Lookups return (nil, nil) when nothing matches.
type BankStore interface {
	// Create inserts a new bank. A taken code yields domain.ErrDuplicateBankCode.
	Create(ctx context.Context, bank *domain.Bank) error

	// Update overwrites the mutable columns of an existing bank.
	Update(ctx context.Context, bank *domain.Bank) error

	FindByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error)
	FindByCode(ctx context.Context, code string) (*domain.Bank, error)
	FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Bank], error)
	FindByCountry(ctx context.Context, country string, page domain.PageRequest) (domain.Page[*domain.Bank], error)

	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByCodeExcludingID checks the code against every bank but excludeID.
	ExistsByCodeExcludingID(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)

	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// AccountCounter asks the account service how many accounts a bank owns.
// Implementations absorb every remote failure and report zero.
type AccountCounter interface {
	CountAccounts(ctx context.Context, bankID uuid.UUID) int64
}

// BankService is the inbound port for bank use cases.
type BankService interface {
	CreateBank(ctx context.Context, bank *domain.Bank) (*domain.Bank, error)
	GetBankByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error)
	GetAllBanks(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Bank], error)
	GetBanksByCountry(ctx context.Context, country string, page domain.PageRequest) (domain.Page[*domain.Bank], error)
	UpdateBank(ctx context.Context, id uuid.UUID, patch *domain.Bank) (*domain.Bank, error)
	DeleteBank(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindByCode(ctx context.Context, code string) (*domain.Bank, error)
}

// BankLookup fetches a bank over HTTP. Used by the self-consuming endpoint.
type BankLookup interface {
	GetBank(ctx context.Context, id uuid.UUID) (*domain.Bank, error)
}
