package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the external order API
func NewClient(cfg config.OrderAPIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CreatedOrder is the order returned by a successful POST /checkout
type CreatedOrder struct {
	ID string
}

type successResponse struct {
	Data *struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

type failureResponse struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

// CreateOrder submits the payload once. It does not retry: a failed submit is
// reported to the customer, who may resubmit.
func (c *Client) CreateOrder(ctx context.Context, payload domain.OrderPayload) (*CreatedOrder, error) {
	url := c.baseURL + "/checkout"

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure failureResponse
		if err := json.Unmarshal(body, &failure); err != nil || failure.Message == "" {
			c.logger.Warn("Order API returned an unreadable error",
				zap.Int("status", resp.StatusCode),
				zap.String("body", truncate(string(body), 512)),
			)
			return nil, fmt.Errorf("order API status %d: %w", resp.StatusCode, errors.ErrMalformedResponse)
		}
		return nil, &errors.ErrOrderAPI{
			StatusCode: resp.StatusCode,
			Message:    failure.Message,
			Details:    failure.Details,
		}
	}

	var success successResponse
	if err := json.Unmarshal(body, &success); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", errors.ErrMalformedResponse)
	}
	if success.Data == nil {
		return nil, fmt.Errorf("response has no data: %w", errors.ErrMalformedResponse)
	}

	id, ok := parseID(success.Data.ID)
	if !ok {
		return nil, fmt.Errorf("response has no order id: %w", errors.ErrMalformedResponse)
	}

	return &CreatedOrder{ID: id}, nil
}

// parseID accepts the id as either a JSON string or a JSON number
func parseID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
