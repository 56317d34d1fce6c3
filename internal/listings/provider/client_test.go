package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rakhimovb/staylist/internal/common/config"
	"github.com/rakhimovb/staylist/internal/listings/provider"
)

func providerConfig(authURL, listingsURL string) config.ProviderConfig {
	return config.ProviderConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      authURL,
		ListingsURL:  listingsURL,
		Timeout:      2 * time.Second,
	}
}

func TestFetchToken_AcceptsBothFieldNames(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"access_token field", `{"access_token":"tok-a"}`},
		{"token field", `{"token":"tok-a"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				var creds map[string]string
				if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
					t.Fatalf("failed to decode credentials: %v", err)
				}
				if creds["client_id"] != "client-id" || creds["client_secret"] != "client-secret" {
					t.Errorf("unexpected credentials payload: %v", creds)
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := provider.NewClient(providerConfig(server.URL, server.URL))
			token, err := client.FetchToken(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if token != "tok-a" {
				t.Errorf("expected tok-a, got %q", token)
			}
		})
	}
}

func TestFetchToken_MissingCredentials(t *testing.T) {
	cfg := providerConfig("http://unused", "http://unused")
	cfg.ClientID = ""

	client := provider.NewClient(cfg)
	_, err := client.FetchToken(context.Background())
	if !errors.Is(err, provider.ErrCredentialsNotConfigured) {
		t.Errorf("expected ErrCredentialsNotConfigured, got %v", err)
	}
}

func TestFetchToken_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := provider.NewClient(providerConfig(server.URL, server.URL))
	if _, err := client.FetchToken(context.Background()); err == nil {
		t.Error("expected an error on a non-2xx auth response")
	}
}

func TestFetchToken_NoTokenField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"expires_in":3600}`))
	}))
	defer server.Close()

	client := provider.NewClient(providerConfig(server.URL, server.URL))
	_, err := client.FetchToken(context.Background())
	if !errors.Is(err, provider.ErrTokenMissing) {
		t.Errorf("expected ErrTokenMissing, got %v", err)
	}
}

func TestSearch_QueryComposition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("city") != "Berlin" || q.Get("check_in") != "2026-10-01" || q.Get("check_out") != "2026-10-05" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Has("page") {
			t.Error("expected page omitted when empty")
		}
		if r.Header.Get("Authorization") != "Bearer tok-a" {
			t.Errorf("expected bearer token header, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"listings":[]}`))
	}))
	defer server.Close()

	client := provider.NewClient(providerConfig(server.URL, server.URL))
	result, err := client.Search(context.Background(), "tok-a", provider.SearchQuery{
		City:     "Berlin",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-05",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Status != http.StatusOK {
		t.Errorf("expected 200, got %d", result.Status)
	}
	if string(result.Body) != `{"listings":[]}` {
		t.Errorf("expected the body relayed untouched, got %s", result.Body)
	}
}

func TestSearch_PageIncludedWhenSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "3" {
			t.Errorf("expected page=3, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := provider.NewClient(providerConfig(server.URL, server.URL))
	if _, err := client.Search(context.Background(), "tok-a", provider.SearchQuery{
		City:     "Berlin",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-05",
		Page:     "3",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestSearch_RelaysProviderStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"error":"upstream detail"}`))
	}))
	defer server.Close()

	client := provider.NewClient(providerConfig(server.URL, server.URL))
	result, err := client.Search(context.Background(), "tok-a", provider.SearchQuery{
		City:     "Berlin",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-05",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Status != http.StatusTeapot {
		t.Errorf("expected the provider status relayed, got %d", result.Status)
	}
}

func TestSearch_RejectsNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := provider.NewClient(providerConfig(server.URL, server.URL))
	if _, err := client.Search(context.Background(), "tok-a", provider.SearchQuery{
		City:     "Berlin",
		CheckIn:  "2026-10-01",
		CheckOut: "2026-10-05",
	}); err == nil {
		t.Error("expected an error for a non-JSON body")
	}
}
