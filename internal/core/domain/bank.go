package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bank is the tenant aggregate. Accounts reference it by ID only.
type Bank struct {
	ID        uuid.UUID
	Code      string // Unique, stored uppercase
	Name      string
	Country   string
	Address   *string // Nullable, encrypted at rest
	Phone     *string // Nullable, encrypted at rest
	Email     *string // Nullable, encrypted at rest
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeBankCode trims and uppercases a bank code.
func NormalizeBankCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// BankSortFields are the fields a bank list may be sorted by.
var BankSortFields = map[string]bool{
	"code":      true,
	"name":      true,
	"country":   true,
	"createdAt": true,
	"updatedAt": true,
}
