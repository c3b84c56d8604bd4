package remote

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	_ ports.BankExistenceChecker = (*BankExistenceAdapter)(nil) // Ensure compliance
	_ ports.AccountCounter       = (*AccountCountAdapter)(nil)
)

// BankExistenceAdapter answers "does this bank exist" for the account
// service. It fails closed: a missing bank and a failed call both read as
// false, but they are logged and counted apart.
type BankExistenceAdapter struct {
	client   ports.BankLookup
	observer ports.RemoteCheckObserver
	log      zerolog.Logger
}

// NewBankExistenceAdapter wraps a bank lookup. observer may be nil.
func NewBankExistenceAdapter(client ports.BankLookup, observer ports.RemoteCheckObserver, baseLogger *zerolog.Logger) *BankExistenceAdapter {
	return &BankExistenceAdapter{
		client:   client,
		observer: observer,
		log:      baseLogger.With().Str("component", "bank_existence").Logger(),
	}
}

// BankExists makes a single attempt and never returns an error.
func (a *BankExistenceAdapter) BankExists(ctx context.Context, bankID uuid.UUID) bool {
	start := time.Now()
	_, err := a.client.GetBank(ctx, bankID)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		observe(a.observer, ports.CheckBankExists, ports.OutcomeFound, elapsed)
		return true
	case errors.Is(err, domain.ErrBankNotFound):
		a.log.Debug().Str("bank_id", bankID.String()).Msg("Bank not found")
		observe(a.observer, ports.CheckBankExists, ports.OutcomeNotFound, elapsed)
		return false
	default:
		a.log.Error().Err(err).
			Str("bank_id", bankID.String()).
			Dur("elapsed", elapsed).
			Msg("Bank service unreachable, treating bank as missing")
		observe(a.observer, ports.CheckBankExists, ports.OutcomeFailure, elapsed)
		return false
	}
}

// accountCountSource is the slice of AccountClient the counter needs.
type accountCountSource interface {
	CountByBank(ctx context.Context, bankID uuid.UUID) (int64, error)
}

// AccountCountAdapter answers "how many accounts does this bank have" for
// the bank service. It fails open: any failure reads as zero.
type AccountCountAdapter struct {
	client   accountCountSource
	observer ports.RemoteCheckObserver
	log      zerolog.Logger
}

// NewAccountCountAdapter wraps an account client. observer may be nil.
func NewAccountCountAdapter(client accountCountSource, observer ports.RemoteCheckObserver, baseLogger *zerolog.Logger) *AccountCountAdapter {
	return &AccountCountAdapter{
		client:   client,
		observer: observer,
		log:      baseLogger.With().Str("component", "account_count").Logger(),
	}
}

// CountAccounts makes a single attempt and never returns an error.
func (a *AccountCountAdapter) CountAccounts(ctx context.Context, bankID uuid.UUID) int64 {
	start := time.Now()
	count, err := a.client.CountByBank(ctx, bankID)
	elapsed := time.Since(start)

	if err != nil {
		a.log.Warn().Err(err).
			Str("bank_id", bankID.String()).
			Dur("elapsed", elapsed).
			Msg("Account service unreachable, assuming no accounts")
		observe(a.observer, ports.CheckAccountCount, ports.OutcomeFailure, elapsed)
		return 0
	}

	observe(a.observer, ports.CheckAccountCount, ports.OutcomeCounted, elapsed)
	return count
}

func observe(o ports.RemoteCheckObserver, check, outcome string, elapsed time.Duration) {
	if o != nil {
		o.ObserveRemoteCheck(check, outcome, elapsed)
	}
}
