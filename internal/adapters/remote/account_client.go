package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountClient is a client for the account service.
type AccountClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAccountClient creates an account service client. Every call is bounded by timeout.
func NewAccountClient(baseURL string, timeout time.Duration) *AccountClient {
	return &AccountClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CountByBank asks how many accounts the bank owns. The endpoint answers
// with a bare JSON integer.
func (c *AccountClient) CountByBank(ctx context.Context, bankID uuid.UUID) (int64, error) {
	if c.baseURL == "" {
		return 0, errors.New("account service base url is empty")
	}

	endpoint := fmt.Sprintf("%s/api/accounts/count?bankId=%s", c.baseURL, url.QueryEscape(bankID.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request to account service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("account service returned error status %d", resp.StatusCode)
	}

	var count int64
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if count < 0 {
		return 0, fmt.Errorf("account service returned negative count %d", count)
	}
	return count, nil
}
