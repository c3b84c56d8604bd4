package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType is a custom type for our ENUM
type AccountType string

const (
	AccountChecking AccountType = "CHECKING"
	AccountSavings  AccountType = "SAVINGS"
	AccountBusiness AccountType = "BUSINESS"
)

// Valid reports whether t is one of the supported account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountBusiness:
		return true
	}
	return false
}

// AccountStatus is a custom type for our ENUM
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
	StatusBlocked  AccountStatus = "BLOCKED"
)

// Valid reports whether s is one of the supported statuses.
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusBlocked:
		return true
	}
	return false
}

// Balance limits: numeric(17,2), i.e. 15 integer digits and 2 fractional digits.
const (
	BalanceIntegerDigits  = 15
	BalanceFractionDigits = 2
)

var maxBalance = decimal.New(1, BalanceIntegerDigits)

// Account is a financial record owned by exactly one bank.
// BankID is set at creation and never changes.
type Account struct {
	ID                uuid.UUID
	AccountNumber     string
	BankID            uuid.UUID
	AccountHolderName string // Encrypted at rest
	AccountType       AccountType
	Balance           decimal.Decimal
	Currency          string
	Status            AccountStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AccountInput carries caller-supplied fields for create and update.
// Balance is a pointer so a missing balance can be told apart from zero.
type AccountInput struct {
	AccountNumber     string
	BankID            uuid.UUID // Ignored on update
	AccountHolderName string
	AccountType       AccountType
	Balance           *decimal.Decimal
	Currency          string
	Status            AccountStatus // Empty: ACTIVE on create, unchanged on update
}

// BelongsTo is the isolation check.
func (a *Account) BelongsTo(bankID uuid.UUID) bool {
	return a.BankID == bankID
}

// ValidateBalance checks a balance is present, non-negative and fits numeric(17,2).
func ValidateBalance(balance *decimal.Decimal) error {
	if balance == nil {
		return fmt.Errorf("%w: balance is required", ErrInvalidAccount)
	}
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance must be >= 0", ErrInvalidAccount)
	}
	if !balance.Equal(balance.Truncate(BalanceFractionDigits)) {
		return fmt.Errorf("%w: balance allows at most %d fractional digits", ErrInvalidAccount, BalanceFractionDigits)
	}
	if balance.GreaterThanOrEqual(maxBalance) {
		return fmt.Errorf("%w: balance allows at most %d integer digits", ErrInvalidAccount, BalanceIntegerDigits)
	}
	return nil
}

// AccountSortFields are the fields an account list may be sorted by.
var AccountSortFields = map[string]bool{
	"accountNumber":     true,
	"accountHolderName": true,
	"accountType":       true,
	"balance":           true,
	"currency":          true,
	"status":            true,
	"createdAt":         true,
	"updatedAt":         true,
}
