package httpapi

import (
	"BankAccounts/internal/core/domain"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Stable error codes returned in every error body.
const (
	codeBankNotFound           = "BANK_NOT_FOUND"
	codeAccountNotFound        = "ACCOUNT_NOT_FOUND"
	codeDuplicateBankCode      = "DUPLICATE_BANK_CODE"
	codeDuplicateAccountNumber = "DUPLICATE_ACCOUNT_NUMBER"
	codeBankHasAccounts        = "BANK_HAS_ACCOUNTS"
	codeBankValidation         = "BANK_VALIDATION_ERROR"
	codeAccountValidation      = "ACCOUNT_VALIDATION_ERROR"
	codeInvalidRequest         = "INVALID_REQUEST"
	codeUnauthorizedAccess     = "UNAUTHORIZED_ACCESS"
	codeInternal               = "INTERNAL_SERVER_ERROR"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Timestamp    time.Time         `json:"timestamp"`
	Status       int               `json:"status"`
	Error        string            `json:"error"`
	Code         string            `json:"code"`
	Message      string            `json:"message"`
	Path         string            `json:"path"`
	Errors       map[string]string `json:"errors,omitempty"`
	AccountCount *int64            `json:"accountCount,omitempty"`
}

// requestError is a malformed request caught before the service is called.
type requestError struct {
	message string
	fields  map[string]string
}

func (e *requestError) Error() string { return e.message }

func invalidRequest(message string) error {
	return &requestError{message: message}
}

// respondWithJSON writes payload with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithError maps err to its status and code. Unknown errors are
// logged and answered with a generic message.
func respondWithError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	body := errorResponse{
		Timestamp: time.Now().UTC(),
		Message:   err.Error(),
		Path:      r.URL.Path,
	}

	var reqErr *requestError
	var hasAccounts *domain.BankHasAccountsError

	switch {
	case errors.As(err, &reqErr):
		body.Status, body.Code = http.StatusBadRequest, codeInvalidRequest
		body.Errors = reqErr.fields
	case errors.As(err, &hasAccounts):
		body.Status, body.Code = http.StatusConflict, codeBankHasAccounts
		body.AccountCount = &hasAccounts.Count
	case errors.Is(err, domain.ErrBankNotFound):
		body.Status, body.Code = http.StatusNotFound, codeBankNotFound
	case errors.Is(err, domain.ErrAccountNotFound):
		body.Status, body.Code = http.StatusNotFound, codeAccountNotFound
	case errors.Is(err, domain.ErrDuplicateBankCode):
		body.Status, body.Code = http.StatusConflict, codeDuplicateBankCode
	case errors.Is(err, domain.ErrDuplicateAccountNumber):
		body.Status, body.Code = http.StatusConflict, codeDuplicateAccountNumber
	case errors.Is(err, domain.ErrInvalidBank):
		body.Status, body.Code = http.StatusBadRequest, codeBankValidation
	case errors.Is(err, domain.ErrInvalidAccount):
		body.Status, body.Code = http.StatusBadRequest, codeAccountValidation
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		body.Status, body.Code = http.StatusForbidden, codeUnauthorizedAccess
	default:
		log.Error().Err(err).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Unhandled error")
		body.Status, body.Code = http.StatusInternalServerError, codeInternal
		body.Message = "An unexpected error occurred"
	}

	body.Error = http.StatusText(body.Status)
	if body.Code == codeInvalidRequest && body.Errors != nil {
		body.Error = "Validation Failed"
	}
	respondWithJSON(w, body.Status, body)
}
