package postgres

import (
	"BankAccounts/internal/core/domain"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// uniqueConstraints maps unique indexes to the domain error they enforce.
var uniqueConstraints = map[string]error{
	"banks_code_key":              domain.ErrDuplicateBankCode,
	"accounts_account_number_key": domain.ErrDuplicateAccountNumber,
}

// mapUniqueViolation turns a unique index rejection into its domain error.
// Anything else is returned unchanged.
func mapUniqueViolation(err error, value string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if domainErr, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %s", domainErr, value)
		}
	}
	return err
}

// orderBy renders an ORDER BY clause from whitelisted sort fields; id is
// always last so pages are stable.
func orderBy(sort []domain.SortOrder, columns map[string]string, defaultColumn string) string {
	parts := make([]string, 0, len(sort)+1)
	for _, o := range sort {
		col, ok := columns[o.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		parts = append(parts, defaultColumn+" ASC")
	}
	parts = append(parts, "id ASC")
	return " ORDER BY " + strings.Join(parts, ", ")
}
