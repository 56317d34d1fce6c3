package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rakhimovb/staylist/internal/common/config"
	"github.com/rakhimovb/staylist/internal/observability/metrics"
)

var (
	ErrCredentialsNotConfigured = errors.New("provider credentials are not configured")
	ErrTokenMissing             = errors.New("provider auth response contains no token")
)

// Client talks to the booking provider. Every search fetches a fresh access
// token first; tokens are never cached between requests.
type Client struct {
	cfg  config.ProviderConfig
	http *http.Client
}

func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

// FetchToken performs the credentials grant against the provider auth
// endpoint. The provider has answered with both `access_token` and `token`
// field names over time, so either is accepted.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return "", ErrCredentialsNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ProviderRequestDurationSeconds.WithLabelValues("auth").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderFailuresTotal.WithLabelValues("auth", "transport").Inc()
		return "", fmt.Errorf("provider auth request: %w", err)
	}
	defer resp.Body.Close()

	metrics.ProviderRequestsTotal.WithLabelValues("auth", strconv.Itoa(resp.StatusCode)).Inc()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ProviderFailuresTotal.WithLabelValues("auth", "status").Inc()
		return "", fmt.Errorf("provider auth returned status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		metrics.ProviderFailuresTotal.WithLabelValues("auth", "decode").Inc()
		return "", fmt.Errorf("decode auth response: %w", err)
	}

	switch {
	case token.AccessToken != "":
		return token.AccessToken, nil
	case token.Token != "":
		return token.Token, nil
	default:
		metrics.ProviderFailuresTotal.WithLabelValues("auth", "no_token").Inc()
		return "", ErrTokenMissing
	}
}

// SearchQuery carries the caller-supplied filters. Page is optional and
// omitted from the outbound query when empty.
type SearchQuery struct {
	City     string
	CheckIn  string
	CheckOut string
	Page     string
}

// SearchResult is the provider's answer, relayed untouched: its HTTP status
// and the raw JSON body.
type SearchResult struct {
	Status int
	Body   []byte
}

func (c *Client) Search(ctx context.Context, token string, query SearchQuery) (SearchResult, error) {
	params := url.Values{}
	params.Set("city", query.City)
	params.Set("check_in", query.CheckIn)
	params.Set("check_out", query.CheckOut)
	if query.Page != "" {
		params.Set("page", query.Page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ListingsURL+"?"+params.Encode(), nil)
	if err != nil {
		return SearchResult{}, fmt.Errorf("build listings request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ProviderRequestDurationSeconds.WithLabelValues("listings").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderFailuresTotal.WithLabelValues("listings", "transport").Inc()
		return SearchResult{}, fmt.Errorf("provider listings request: %w", err)
	}
	defer resp.Body.Close()

	metrics.ProviderRequestsTotal.WithLabelValues("listings", strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderFailuresTotal.WithLabelValues("listings", "read").Inc()
		return SearchResult{}, fmt.Errorf("read listings response: %w", err)
	}
	if !json.Valid(body) {
		metrics.ProviderFailuresTotal.WithLabelValues("listings", "decode").Inc()
		return SearchResult{}, errors.New("provider listings response is not valid json")
	}

	return SearchResult{Status: resp.StatusCode, Body: body}, nil
}
