// Package notion is a small client for the content workspace REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const apiVersion = "2022-06-28"

// MaxPageSize is the largest page size the API accepts.
const MaxPageSize = 100

var ErrUnauthorized = errors.New("notion: unauthorized")

// Client is a content workspace API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new client. baseURL is normally https://api.notion.com.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchPages returns up to pageSize pages, most recently edited first.
// Only a single page of results is fetched.
func (c *Client) SearchPages(ctx context.Context, pageSize int) ([]Page, error) {
	body := map[string]any{
		"filter": map[string]string{
			"property": "object",
			"value":    "page",
		},
		"sort": map[string]string{
			"direction": "descending",
			"timestamp": "last_edited_time",
		},
		"page_size": clampPageSize(pageSize),
	}

	var result listResponse[Page]
	if err := c.do(ctx, http.MethodPost, "/v1/search", body, &result); err != nil {
		return nil, fmt.Errorf("search pages: %w", err)
	}
	return result.Results, nil
}

// BlockChildren returns the first page of child blocks of a page.
func (c *Client) BlockChildren(ctx context.Context, pageID string, pageSize int) ([]Block, error) {
	path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", url.PathEscape(pageID), clampPageSize(pageSize))

	var result listResponse[Block]
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, fmt.Errorf("get block children: %w", err)
	}
	return result.Results, nil
}

// UpdateSelect sets a select-like property. kind is the property type,
// "status" or "select".
func (c *Client) UpdateSelect(ctx context.Context, pageID, property, kind, value string) error {
	if kind == "" {
		kind = "status"
	}
	body := map[string]any{
		"properties": map[string]any{
			property: map[string]any{
				kind: map[string]string{"name": value},
			},
		},
	}
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+url.PathEscape(pageID), body, nil); err != nil {
		return fmt.Errorf("update page property: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(data, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = string(bytes.TrimSpace(data))
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func clampPageSize(n int) int {
	if n <= 0 || n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
