// Package remote holds the HTTP clients each service uses to read from the
// other, and the adapters that turn their answers into local decisions.
package remote

import (
	"BankAccounts/internal/core/domain"
	"BankAccounts/internal/core/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var _ ports.BankLookup = (*BankClient)(nil) // Ensure compliance

// BankClient is a client for the bank service.
type BankClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBankClient creates a bank service client. Every call is bounded by timeout.
func NewBankClient(baseURL string, timeout time.Duration) *BankClient {
	return &BankClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// bankPayload is the bank service's JSON representation of a bank.
type bankPayload struct {
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

// GetBank fetches a bank by id. A 404 yields domain.ErrBankNotFound; any
// other failure is returned as a plain error.
func (c *BankClient) GetBank(ctx context.Context, id uuid.UUID) (*domain.Bank, error) {
	if c.baseURL == "" {
		return nil, errors.New("bank service base url is empty")
	}

	url := fmt.Sprintf("%s/api/banks/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request to bank service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: id %s", domain.ErrBankNotFound, id)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("bank service returned error status %d", resp.StatusCode)
	}

	var payload bankPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.ID == uuid.Nil {
		return nil, errors.New("bank service returned a bank without id")
	}

	return &domain.Bank{
		ID:        payload.ID,
		Code:      payload.Code,
		Name:      payload.Name,
		Country:   payload.Country,
		Address:   payload.Address,
		Phone:     payload.Phone,
		Email:     payload.Email,
		CreatedAt: payload.CreatedAt,
		UpdatedAt: payload.UpdatedAt,
	}, nil
}
