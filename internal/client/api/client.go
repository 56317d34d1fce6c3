package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Client is the typed REST client the desktop application talks through.
// The bearer token is injected into every request once set; SetToken("")
// drops it again after logout.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"authentication_token"`
}

type sessionEnvelope struct {
	User User `json:"user"`
}

type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type City struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// APIError is a decoded error response. Messages holds either the single
// `error` string or the full `errors` list from a validation failure.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return strings.Join(e.Messages, ", ")
}

func (c *Client) Signup(ctx context.Context, email, password, confirmation string) (User, error) {
	body := map[string]map[string]string{
		"user": {
			"email":                 email,
			"password":              password,
			"password_confirmation": confirmation,
		},
	}
	var envelope sessionEnvelope
	if err := c.call(ctx, http.MethodPost, "/signup", body, &envelope); err != nil {
		return User{}, err
	}
	return envelope.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	body := map[string]string{"email": email, "password": password}
	var envelope sessionEnvelope
	if err := c.call(ctx, http.MethodPost, "/login", body, &envelope); err != nil {
		return User{}, err
	}
	return envelope.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/logout", nil, nil)
}

func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.call(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (Item, error) {
	var item Item
	if err := c.call(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (c *Client) CreateItem(ctx context.Context, name, description string) (Item, error) {
	body := map[string]map[string]string{"item": {"name": name, "description": description}}
	var item Item
	if err := c.call(ctx, http.MethodPost, "/items", body, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id, name, description string) (Item, error) {
	body := map[string]map[string]string{"item": {"name": name, "description": description}}
	var item Item
	if err := c.call(ctx, http.MethodPut, "/items/"+url.PathEscape(id), body, &item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SearchCities(ctx context.Context, query string) ([]City, error) {
	var cities []City
	endpoint := "/cities?q=" + url.QueryEscape(query)
	if err := c.call(ctx, http.MethodGet, endpoint, nil, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *Client) SearchListings(ctx context.Context, city, checkIn, checkOut string, page int) (ListingsPage, error) {
	params := url.Values{}
	params.Set("city", city)
	params.Set("check_in", checkIn)
	params.Set("check_out", checkOut)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	raw, err := c.callRaw(ctx, http.MethodGet, "/listings?"+params.Encode(), nil)
	if err != nil {
		return ListingsPage{}, err
	}
	return NormalizeListings(raw), nil
}

func (c *Client) call(ctx context.Context, method, endpoint string, body any, out any) error {
	raw, err := c.callRaw(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) callRaw(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	var single struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &single); err == nil && single.Error != "" {
		return &APIError{Status: status, Messages: []string{single.Error}}
	}

	var multiple struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &multiple); err == nil && len(multiple.Errors) > 0 {
		return &APIError{Status: status, Messages: multiple.Errors}
	}

	return &APIError{Status: status}
}
