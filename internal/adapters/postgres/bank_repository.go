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
)

var _ ports.BankStore = (*bankRepository)(nil) // Ensure compliance

var bankSortColumns = map[string]string{
	"code":      "code",
	"name":      "name",
	"country":   "country",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// bankQueryCols is the list of columns for scanning
const bankQueryCols = `
	id, code, name, country, address, phone, email, created_at, updated_at
`

type bankRepository struct {
	db     *DB
	secSvc ports.SecurityPort // Contact columns are encrypted
	log    zerolog.Logger
}

// NewBankRepository creates a new repository for bank operations.
func NewBankRepository(db *DB, secSvc ports.SecurityPort, baseLogger *zerolog.Logger) ports.BankStore {
	return &bankRepository{
		db:     db,
		secSvc: secSvc,
		log:    baseLogger.With().Str("component", "bank_repo").Logger(),
	}
}

// Create encrypts the contact fields and inserts the bank.
func (r *bankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	address, phone, email, err := r.encryptContact(bank)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO banks (
			id, code, name, country, address, phone, email, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.pool.Exec(ctx, query,
		bank.ID,
		bank.Code,
		bank.Name,
		bank.Country,
		address,
		phone,
		email,
		bank.CreatedAt,
		bank.UpdatedAt,
	)
	if err != nil {
		err = mapUniqueViolation(err, bank.Code)
		if !errors.Is(err, domain.ErrDuplicateBankCode) {
			r.log.Error().Err(err).Str("code", bank.Code).Msg("Failed to insert new bank")
		}
	}
	return err
}

// Update overwrites every mutable column.
func (r *bankRepository) Update(ctx context.Context, bank *domain.Bank) error {
	address, phone, email, err := r.encryptContact(bank)
	if err != nil {
		return err
	}

	query := `
		UPDATE banks
		SET code = $2, name = $3, country = $4, address = $5, phone = $6, email = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := r.db.pool.Exec(ctx, query,
		bank.ID,
		bank.Code,
		bank.Name,
		bank.Country,
		address,
		phone,
		email,
		bank.UpdatedAt,
	)
	if err != nil {
		err = mapUniqueViolation(err, bank.Code)
		if !errors.Is(err, domain.ErrDuplicateBankCode) {
			r.log.Error().Err(err).Str("bank_id", bank.ID.String()).Msg("Failed to update bank")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: id %s", domain.ErrBankNotFound, bank.ID)
	}
	return nil
}

// FindByID finds and decrypts a bank by its UUID.
func (r *bankRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	query := `SELECT ` + bankQueryCols + ` FROM banks WHERE id = $1`
	return r.findOne(ctx, query, id)
}

// FindByCode finds a bank by its normalized code.
func (r *bankRepository) FindByCode(ctx context.Context, code string) (*domain.Bank, error) {
	query := `SELECT ` + bankQueryCols + ` FROM banks WHERE code = $1`
	return r.findOne(ctx, query, code)
}

func (r *bankRepository) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	return r.findPage(ctx, "", page)
}

// FindByCountry matches the country exactly.
func (r *bankRepository) FindByCountry(ctx context.Context, country string, page domain.PageRequest) (domain.Page[*domain.Bank], error) {
	return r.findPage(ctx, "WHERE country = $1", page, country)
}

func (r *bankRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM banks WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		r.log.Error().Err(err).Str("code", code).Msg("Failed to check bank code")
	}
	return exists, err
}

func (r *bankRepository) ExistsByCodeExcludingID(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM banks WHERE code = $1 AND id <> $2)`, code, excludeID,
	).Scan(&exists)
	if err != nil {
		r.log.Error().Err(err).Str("code", code).Msg("Failed to check bank code")
	}
	return exists, err
}

func (r *bankRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM banks WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Str("bank_id", id.String()).Msg("Failed to delete bank")
	}
	return err
}

func (r *bankRepository) findOne(ctx context.Context, query string, arg any) (*domain.Bank, error) {
	bank, err := r.scanBank(r.db.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Return nil, nil for "not found"
		}
		return nil, err
	}
	return bank, nil
}

func (r *bankRepository) findPage(ctx context.Context, where string, page domain.PageRequest, args ...any) (domain.Page[*domain.Bank], error) {
	var total int64
	if err := r.db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM banks `+where, args...).Scan(&total); err != nil {
		r.log.Error().Err(err).Msg("Failed to count banks")
		return domain.Page[*domain.Bank]{}, err
	}

	n := len(args)
	query := `SELECT ` + bankQueryCols + ` FROM banks ` + where +
		orderBy(page.Sort, bankSortColumns, "created_at") +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)

	rows, err := r.db.pool.Query(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query banks")
		return domain.Page[*domain.Bank]{}, err
	}
	defer rows.Close()

	banks := make([]*domain.Bank, 0, page.Size)
	for rows.Next() {
		bank, err := r.scanBank(rows)
		if err != nil {
			return domain.Page[*domain.Bank]{}, err
		}
		banks = append(banks, bank)
	}
	if rows.Err() != nil {
		r.log.Error().Err(rows.Err()).Msg("Error iterating bank rows")
		return domain.Page[*domain.Bank]{}, rows.Err()
	}

	return domain.NewPage(banks, page, total), nil
}

// scanBank scans a row and decrypts the contact columns.
func (r *bankRepository) scanBank(row pgx.Row) (*domain.Bank, error) {
	var bank domain.Bank
	var encAddress, encPhone, encEmail *string

	err := row.Scan(
		&bank.ID,
		&bank.Code,
		&bank.Name,
		&bank.Country,
		&encAddress,
		&encPhone,
		&encEmail,
		&bank.CreatedAt,
		&bank.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan bank row")
		return nil, err
	}

	if bank.Address, err = r.decryptOptional(encAddress); err != nil {
		r.log.Error().Err(err).Str("bank_id", bank.ID.String()).Msg("Failed to decrypt address")
		return nil, err
	}
	if bank.Phone, err = r.decryptOptional(encPhone); err != nil {
		r.log.Error().Err(err).Str("bank_id", bank.ID.String()).Msg("Failed to decrypt phone")
		return nil, err
	}
	if bank.Email, err = r.decryptOptional(encEmail); err != nil {
		r.log.Error().Err(err).Str("bank_id", bank.ID.String()).Msg("Failed to decrypt email")
		return nil, err
	}
	return &bank, nil
}

func (r *bankRepository) encryptContact(bank *domain.Bank) (address, phone, email *string, err error) {
	if address, err = r.encryptOptional(bank.Address); err != nil {
		return nil, nil, nil, err
	}
	if phone, err = r.encryptOptional(bank.Phone); err != nil {
		return nil, nil, nil, err
	}
	if email, err = r.encryptOptional(bank.Email); err != nil {
		return nil, nil, nil, err
	}
	return address, phone, email, nil
}

func (r *bankRepository) encryptOptional(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	enc, err := r.secSvc.EncryptString(*v)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to encrypt contact field")
		return nil, err
	}
	return &enc, nil
}

func (r *bankRepository) decryptOptional(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	dec, err := r.secSvc.DecryptString(*v)
	if err != nil {
		return nil, err
	}
	return &dec, nil
}
