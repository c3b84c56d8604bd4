package httpapi

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// bankRequest is the body of create and update.
type bankRequest struct {
	Code    string  `json:"code" validate:"required,max=10"`
	Name    string  `json:"name" validate:"required,max=100"`
	Country string  `json:"country" validate:"required,max=50"`
	Address *string `json:"address" validate:"omitempty,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Email   *string `json:"email" validate:"omitempty,email,max=100"`
}

func (b bankRequest) toDomain() *domain.Bank {
	return &domain.Bank{
		Code:    b.Code,
		Name:    b.Name,
		Country: b.Country,
		Address: b.Address,
		Phone:   b.Phone,
		Email:   b.Email,
	}
}

type bankResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toBankResponse(b *domain.Bank) bankResponse {
	return bankResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Country:   b.Country,
		Address:   b.Address,
		Phone:     b.Phone,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BankHandler serves the bank service's REST surface.
type BankHandler struct {
	service ports.BankService
	lookup  ports.BankLookup // Self-consuming client for the internal endpoint
	log     zerolog.Logger
}

// NewBankHandler creates a BankHandler. lookup backs GET /api/banks/{id}/internal.
func NewBankHandler(service ports.BankService, lookup ports.BankLookup, baseLogger *zerolog.Logger) *BankHandler {
	return &BankHandler{
		service: service,
		lookup:  lookup,
		log:     baseLogger.With().Str("component", "bank_handler").Logger(),
	}
}

func (h *BankHandler) routes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/code/{code}", h.handleGetByCode)
	r.Get("/code/{code}/exists", h.handleExistsByCode)
	r.Get("/{id}", h.handleGet)
	r.Get("/{id}/internal", h.handleGetInternal)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *BankHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	bank, err := h.service.CreateBank(r.Context(), req.toDomain())
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toBankResponse(bank))
}

func (h *BankHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam("id", chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	bank, err := h.service.GetBankByID(r.Context(), id)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toBankResponse(bank))
}

// handleGetInternal answers through the bank service's own HTTP API, the
// same path the account service takes.
func (h *BankHandler) handleGetInternal(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam("id", chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	bank, err := h.lookup.GetBank(r.Context(), id)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toBankResponse(bank))
}

// handleList lists all banks, or those of ?country= when given.
func (h *BankHandler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r, domain.BankSortFields)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	var result domain.Page[*domain.Bank]
	if country := strings.TrimSpace(r.URL.Query().Get("country")); country != "" {
		result, err = h.service.GetBanksByCountry(r.Context(), country, page)
	} else {
		result, err = h.service.GetAllBanks(r.Context(), page)
	}
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toPageResponse(result, toBankResponse))
}

func (h *BankHandler) handleGetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	bank, err := h.service.FindByCode(r.Context(), code)
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	if bank == nil {
		respondWithError(w, r, h.log, fmt.Errorf("%w: code %s", domain.ErrBankNotFound, domain.NormalizeBankCode(code)))
		return
	}
	respondWithJSON(w, http.StatusOK, toBankResponse(bank))
}

func (h *BankHandler) handleExistsByCode(w http.ResponseWriter, r *http.Request) {
	exists, err := h.service.ExistsByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, exists)
}

func (h *BankHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam("id", chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	var req bankRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	bank, err := h.service.UpdateBank(r.Context(), id, req.toDomain())
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, toBankResponse(bank))
}

func (h *BankHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam("id", chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, r, h.log, err)
		return
	}

	if err := h.service.DeleteBank(r.Context(), id); err != nil {
		respondWithError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
