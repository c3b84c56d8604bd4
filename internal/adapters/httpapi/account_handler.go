package httpapi

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// accountRequest is the body of create and update. bankId is read only on
// create; an update names the owning bank in the query string.
type accountRequest struct {
	AccountNumber     string           `json:"accountNumber" validate:"required,max=20"`
	BankID            *uuid.UUID       `json:"bankId"`
	AccountHolderName string           `json:"accountHolderName" validate:"required,max=100"`
	AccountType       string           `json:"accountType" validate:"required,oneof=CHECKING SAVINGS BUSINESS"`
	Balance           *decimal.Decimal `json:"balance" validate:"required"`
	Currency          string           `json:"currency" validate:"required,len=3"`
	Status            string           `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE BLOCKED"`
}

func (a accountRequest) toInput() domain.AccountInput {
	in := domain.AccountInput{
		AccountNumber:     a.AccountNumber,
		AccountHolderName: a.AccountHolderName,
		AccountType:       domain.AccountType(a.AccountType),
		Balance:           a.Balance,
		Currency:          a.Currency,
		Status:            domain.AccountStatus(a.Status),
	}
	if a.BankID != nil {
		in.BankID = *a.BankID
	}
	return in
}

type accountResponse struct {
	ID                uuid.UUID   `json:"id"`
	AccountNumber     string      `json:"accountNumber"`
	BankID            uuid.UUID   `json:"bankId"`
	AccountHolderName string      `json:"accountHolderName"`
	AccountType       string      `json:"accountType"`
	Balance           json.Number `json:"balance"`
	Currency          string      `json:"currency"`
	Status            string      `json:"status"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:                a.ID,
		AccountNumber:     a.AccountNumber,
		BankID:            a.BankID,
		AccountHolderName: a.AccountHolderName,
		AccountType:       string(a.AccountType),
		Balance:           json.Number(a.Balance.StringFixed(domain.BalanceFractionDigits)),
		Currency:          a.Currency,
		Status:            string(a.Status),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// AccountHandler serves the account service's REST surface. Every route
// that names an account also takes ?bankId=.
type AccountHandler struct {
	service ports.AccountService
	log     zerolog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(service ports.AccountService, baseLogger *zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     baseLogger.With().Str("component", "account_handler").Logger(),
	}
}

func (h *AccountHandler) routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/count", h.handleCount)
	r.Get("/exists", h.handleExists)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *AccountHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	if req.BankID == nil {
		respondWithError(w, r, h.log, &requestError{
			message: "Validation failed for one or more fields",
			fields:  map[string]string{"bankId": "must not be null"},
		})
		return
	}

	acct, err := h.service.CreateAccount(r.Context(), req.toInput())
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toAccountResponse(acct))
}

func (h *AccountHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, bankID, err := accountScope(r)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	acct, err := h.service.GetAccountByID(r.Context(), id, bankID)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toAccountResponse(acct))
}

func (h *AccountHandler) handleList(w http.ResponseWriter, r *http.Request) {
	bankID, err := uuidParam("bankId", r.URL.Query().Get("bankId"))
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	page, err := parsePageRequest(r, domain.AccountSortFields)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	result, err := h.service.GetAccountsByBankID(r.Context(), bankID, page)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toPageResponse(result, toAccountResponse))
}

func (h *AccountHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, bankID, err := accountScope(r)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	var req accountRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	acct, err := h.service.UpdateAccount(r.Context(), id, bankID, req.toInput())
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toAccountResponse(acct))
}

func (h *AccountHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, bankID, err := accountScope(r)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), id, bankID); err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCount answers the bank service's delete guard with a bare integer.
func (h *AccountHandler) handleCount(w http.ResponseWriter, r *http.Request) {
	bankID, err := uuidParam("bankId", r.URL.Query().Get("bankId"))
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	count, err := h.service.CountByBankID(r.Context(), bankID)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, count)
}

func (h *AccountHandler) handleExists(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("accountNumber")
	if number == "" {
		respondWithError(w, r, h.log, invalidRequest("accountNumber is required"))
		return
	}

	exists, err := h.service.ExistsByAccountNumber(r.Context(), number)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, exists)
}

// accountScope reads the {id} path parameter and the required ?bankId=.
func accountScope(r *http.Request) (id, bankID uuid.UUID, err error) {
	if id, err = uuidParam("id", chi.URLParam(r, "id")); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if bankID, err = uuidParam("bankId", r.URL.Query().Get("bankId")); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return id, bankID, nil
}
