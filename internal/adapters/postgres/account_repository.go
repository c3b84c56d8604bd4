package postgres

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var _ ports.AccountStore = (*accountRepository)(nil) // Ensure compliance

var accountSortColumns = map[string]string{
	"accountNumber":     "account_number",
	"accountHolderName": "account_holder_name",
	"accountType":       "account_type",
	"balance":           "balance",
	"currency":          "currency",
	"status":            "status",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

// balance is read as text so it keeps its exact decimal value.
const accountQueryCols = `
	id, account_number, bank_id, account_holder_name, account_type,
	balance::text, currency, status, created_at, updated_at
`

type accountRepository struct {
	db     *DB
	secSvc ports.SecurityPort // Holder names are encrypted
	log    zerolog.Logger
}

// NewAccountRepository creates a new repository for account operations.
func NewAccountRepository(db *DB, secSvc ports.SecurityPort, baseLogger *zerolog.Logger) ports.AccountStore {
	return &accountRepository{
		db:     db,
		secSvc: secSvc,
		log:    baseLogger.With().Str("component", "account_repo").Logger(),
	}
}

// Create encrypts the holder name and inserts the account.
func (r *accountRepository) Create(ctx context.Context, acct *domain.Account) error {
	encHolder, err := r.secSvc.EncryptString(acct.AccountHolderName)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt holder name")
		return err
	}

	query := `
		INSERT INTO accounts (
			id, account_number, bank_id, account_holder_name, account_type,
			balance, currency, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10)
	`
	_, err = r.db.pool.Exec(ctx, query,
		acct.ID,
		acct.AccountNumber,
		acct.BankID,
		encHolder,
		acct.AccountType,
		acct.Balance.StringFixed(domain.BalanceFractionDigits),
		acct.Currency,
		acct.Status,
		acct.CreatedAt,
		acct.UpdatedAt,
	)
	if err != nil {
		err = mapUniqueViolation(err, acct.AccountNumber)
		if !errors.Is(err, domain.ErrDuplicateAccountNumber) {
			r.log.Error().Err(err).Str("bank_id", acct.BankID.String()).Msg("Failed to insert new account")
		}
	}
	return err
}

// Update writes the mutable columns. bank_id and created_at are never touched.
func (r *accountRepository) Update(ctx context.Context, acct *domain.Account) error {
	encHolder, err := r.secSvc.EncryptString(acct.AccountHolderName)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt holder name")
		return err
	}

	query := `
		UPDATE accounts
		SET account_number = $2, account_holder_name = $3, account_type = $4,
		    balance = $5::numeric, currency = $6, status = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := r.db.pool.Exec(ctx, query,
		acct.ID,
		acct.AccountNumber,
		encHolder,
		acct.AccountType,
		acct.Balance.StringFixed(domain.BalanceFractionDigits),
		acct.Currency,
		acct.Status,
		acct.UpdatedAt,
	)
	if err != nil {
		err = mapUniqueViolation(err, acct.AccountNumber)
		if !errors.Is(err, domain.ErrDuplicateAccountNumber) {
			r.log.Error().Err(err).Str("account_id", acct.ID.String()).Msg("Failed to update account")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %s", domain.ErrAccountNotFound, acct.ID)
	}
	return nil
}

// FindByID finds and decrypts an account by its UUID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountQueryCols + ` FROM accounts WHERE id = $1`

	acct, err := r.scanAccount(r.db.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Return nil, nil for "not found"
		}
		return nil, err
	}
	return acct, nil
}

// FindByBankID returns one page of the bank's accounts, never another bank's.
func (r *accountRepository) FindByBankID(ctx context.Context, bankID uuid.UUID, page domain.PageRequest) (domain.Page[*domain.Account], error) {
	total, err := r.CountByBankID(ctx, bankID)
	if err != nil {
		return domain.Page[*domain.Account]{}, err
	}

	query := `SELECT ` + accountQueryCols + ` FROM accounts WHERE bank_id = $1` +
		orderBy(page.Sort, accountSortColumns, "created_at") +
		` LIMIT $2 OFFSET $3`

	rows, err := r.db.pool.Query(ctx, query, bankID, page.Size, page.Offset())
	if err != nil {
		r.log.Error().Err(err).Str("bank_id", bankID.String()).Msg("Failed to query accounts")
		return domain.Page[*domain.Account]{}, err
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0, page.Size)
	for rows.Next() {
		acct, err := r.scanAccount(rows)
		if err != nil {
			r.log.Error().Err(err).Str("bank_id", bankID.String()).Msg("Failed during row scan for accounts")
			return domain.Page[*domain.Account]{}, err
		}
		accounts = append(accounts, acct)
	}
	if rows.Err() != nil {
		r.log.Error().Err(rows.Err()).Str("bank_id", bankID.String()).Msg("Error iterating account rows")
		return domain.Page[*domain.Account]{}, rows.Err()
	}

	return domain.NewPage(accounts, page, total), nil
}

func (r *accountRepository) CountByBankID(ctx context.Context, bankID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE bank_id = $1`, bankID).Scan(&count)
	if err != nil {
		r.log.Error().Err(err).Str("bank_id", bankID.String()).Msg("Failed to count accounts")
	}
	return count, err
}

func (r *accountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber,
	).Scan(&exists)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to check account number")
	}
	return exists, err
}

func (r *accountRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Str("account_id", id.String()).Msg("Failed to delete account")
	}
	return err
}

// scanAccount scans a row, parses the balance and decrypts the holder name.
func (r *accountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var acct domain.Account
	var encHolder, balance string

	err := row.Scan(
		&acct.ID,
		&acct.AccountNumber,
		&acct.BankID,
		&encHolder,
		&acct.AccountType,
		&balance,
		&acct.Currency,
		&acct.Status,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan account row")
		return nil, err
	}

	if acct.Balance, err = decimal.NewFromString(balance); err != nil {
		r.log.Error().Err(err).Str("account_id", acct.ID.String()).Msg("Failed to parse balance")
		return nil, err
	}

	if acct.AccountHolderName, err = r.secSvc.DecryptString(encHolder); err != nil {
		r.log.Error().Err(err).Str("account_id", acct.ID.String()).Msg("Failed to decrypt holder name")
		return nil, err
	}
	return &acct, nil
}
