package smartsuite

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client fetches module records from the low-code store's REST API.
type Client struct {
	baseURL string
	apiKey  string
	table   string
	client  *http.Client
}

func NewClient(baseURL, apiKey, table string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		table:   table,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

var ErrRecordNotFound = fmt.Errorf("smartsuite: record not found")

func (c *Client) GetModule(ctx context.Context, id string) (*ModuleRecord, error) {
	url := fmt.Sprintf("%s/applications/%s/records/%s/", c.baseURL, c.table, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("smartsuite get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrRecordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("smartsuite get: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("smartsuite read: %w", err)
	}
	return DecodeModule(raw)
}
