package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Business-rule failures. Callers match them with errors.Is; the HTTP layer
// turns each one into a stable error code.
var (
	ErrBankNotFound           = errors.New("bank not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrDuplicateBankCode      = errors.New("bank code already exists")
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrInvalidBank            = errors.New("invalid bank")
	ErrInvalidAccount         = errors.New("invalid account")
	ErrUnauthorizedAccess     = errors.New("account does not belong to bank")
	ErrBankHasAccounts        = errors.New("bank has associated accounts")
)

// BankHasAccountsError is returned when a bank delete is blocked by accounts
// the account service still holds for it.
type BankHasAccountsError struct {
	BankID uuid.UUID
	Count  int64
}

func (e *BankHasAccountsError) Error() string {
	return fmt.Sprintf("bank with id %s cannot be deleted because it has %d associated accounts", e.BankID, e.Count)
}

// Is lets errors.Is(err, ErrBankHasAccounts) match.
func (e *BankHasAccountsError) Is(target error) bool {
	return target == ErrBankHasAccounts
}
