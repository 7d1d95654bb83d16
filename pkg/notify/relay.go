package notify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nimko_store/internal/models"
)

// RelayClient posts accepted orders to the external relay endpoint (the
// mail-merge/append-to-spreadsheet bridge). Delivery is fire-and-forget:
// callers log failures and move on.
type RelayClient struct {
	BaseURL    string
	Username   string
	Password   string
	HTTPClient *http.Client
}

type RelayResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RowID     string `json:"rowId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func NewRelayClient(baseURL, username, password string) *RelayClient {
	return &RelayClient{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether a relay endpoint is configured at all.
func (c *RelayClient) Enabled() bool {
	return c.BaseURL != ""
}

// SubmitOrder posts the full order payload to the relay.
func (c *RelayClient) SubmitOrder(order *models.Order) (*RelayResponse, error) {
	jsonData, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Username != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
		req.Header.Set("Authorization", "Basic "+auth)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response RelayResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &response, nil
}
