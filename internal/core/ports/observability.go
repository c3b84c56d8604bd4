package ports

import "time"

// Clock supplies write-time timestamps.
type Clock interface {
	Now() time.Time
}

// Remote check names.
const (
	CheckBankExists   = "bank_exists"
	CheckAccountCount = "account_count"
)

// Remote check outcomes. A failure is always recorded as such, even when
// the adapter collapses it into the same local answer as a confirmed one.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeCounted  = "counted"
	OutcomeFailure  = "failure"
)

// RemoteCheckObserver records the outcome of each cross-service check.
type RemoteCheckObserver interface {
	ObserveRemoteCheck(check, outcome string, elapsed time.Duration)
}
