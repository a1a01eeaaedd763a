package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches dashboard summaries from the external Analytics service.
// Calls carry a bounded timeout; failures are transport-level and retryable.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an analytics client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetDashboardSummary fetches the pre-shaped summary for a company over the
// given number of trailing days
func (c *Client) GetDashboardSummary(ctx context.Context, companyName string, rangeDays int) (*DashboardSummary, error) {
	endpoint := fmt.Sprintf("%s/analytics/dashboard?company=%s&range=%s",
		c.baseURL, url.QueryEscape(companyName), strconv.Itoa(rangeDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics service returned status %d", resp.StatusCode)
	}

	var summary DashboardSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode analytics summary: %w", err)
	}
	return &summary, nil
}
