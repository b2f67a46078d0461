package pocketbase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"betpromo/pkg/logger"
)

// Collection names used by this application.
const (
	CollectionBookmakers    = "bookmakers"
	CollectionStats         = "stats"
	CollectionActivities    = "activities"
	CollectionAnalytics     = "analytics"
	CollectionUsers         = "users"
	CollectionNotifications = "notifications"
	CollectionSettings      = "settings"
	CollectionMessages      = "contact_messages"
	CollectionMonthlyStats  = "monthly_stats"

	// CollectionSuperusers is PocketBase's built-in superuser table.
	CollectionSuperusers = "_superusers"
)

// maxPerPage is the largest page size PocketBase serves per list request.
const maxPerPage = 500

// Client talks to a PocketBase instance over its records REST API.
// All state mutation of this application goes through it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger

	mu    sync.RWMutex
	token string
}

// ListQuery narrows a records list request.
type ListQuery struct {
	Sort    string // PocketBase sort expression, e.g. "-created" or "dayIndex"
	Page    int    // 0 means fetch every page
	PerPage int
	Filter  string
}

// AuthResponse is the payload of a successful auth-with-password call.
// Record is kept raw so callers can decode whichever table shape matched.
type AuthResponse struct {
	Token  string          `json:"token"`
	Record json.RawMessage `json:"record"`
}

// APIError is a non-2xx answer from PocketBase.
type APIError struct {
	Status  int                        `json:"status"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("pocketbase: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from PocketBase.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// NewClient creates a new PocketBase client
func NewClient(baseURL string, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// SetToken installs the bearer token sent with every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// AuthWithPassword authenticates an identity/password pair against one
// credential table and returns the matched record untouched.
func (c *Client) AuthWithPassword(ctx context.Context, collection, identity, password string) (*AuthResponse, error) {
	body := map[string]string{
		"identity": identity,
		"password": password,
	}

	endpoint := fmt.Sprintf("%s/api/collections/%s/auth-with-password", c.baseURL, url.PathEscape(collection))

	var authResp AuthResponse
	if err := c.do(ctx, http.MethodPost, endpoint, body, &authResp); err != nil {
		return nil, err
	}

	c.logger.WithField("collection", collection).Debug("Authenticated against PocketBase")
	return &authResp, nil
}

// listPage is one page of a records list response.
type listPage struct {
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	TotalPages int               `json:"totalPages"`
	TotalItems int               `json:"totalItems"`
	Items      []json.RawMessage `json:"items"`
}

// List fetches records from a collection. With q.Page == 0 it walks every
// page and returns the full list.
func (c *Client) List(ctx context.Context, collection string, q ListQuery) ([]json.RawMessage, error) {
	if q.Page > 0 {
		page, err := c.listPage(ctx, collection, q.Page, q.PerPage, q.Sort, q.Filter)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = maxPerPage
	}

	var items []json.RawMessage
	for page := 1; ; page++ {
		resp, err := c.listPage(ctx, collection, page, perPage, q.Sort, q.Filter)
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Items...)
		if page >= resp.TotalPages || len(resp.Items) == 0 {
			break
		}
	}
	return items, nil
}

func (c *Client) listPage(ctx context.Context, collection string, page, perPage int, sort, filter string) (*listPage, error) {
	if perPage <= 0 {
		perPage = 30
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("perPage", strconv.Itoa(perPage))
	if sort != "" {
		params.Set("sort", sort)
	}
	if filter != "" {
		params.Set("filter", filter)
	}

	endpoint := fmt.Sprintf("%s/api/collections/%s/records?%s",
		c.baseURL, url.PathEscape(collection), params.Encode())

	var resp listPage
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create inserts a record and decodes the stored result into out (may be nil).
func (c *Client) Create(ctx context.Context, collection string, body interface{}, out interface{}) error {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records", c.baseURL, url.PathEscape(collection))
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

// Update patches a record by id and decodes the stored result into out (may be nil).
func (c *Client) Update(ctx context.Context, collection, id string, body interface{}, out interface{}) error {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s",
		c.baseURL, url.PathEscape(collection), url.PathEscape(id))
	return c.do(ctx, http.MethodPatch, endpoint, body, out)
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	endpoint := fmt.Sprintf("%s/api/collections/%s/records/%s",
		c.baseURL, url.PathEscape(collection), url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// do executes one request against PocketBase and decodes the response.
func (c *Client) do(ctx context.Context, method, endpoint string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call PocketBase: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"status_code": resp.StatusCode,
			"endpoint":    endpoint,
		}).Error("Failed to parse PocketBase response")
		return fmt.Errorf("failed to parse PocketBase response: %w", err)
	}
	return nil
}
