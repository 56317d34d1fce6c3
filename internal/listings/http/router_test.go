package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rakhimovb/staylist/internal/common/config"
	"github.com/rakhimovb/staylist/internal/common/logger"
	listingshttp "github.com/rakhimovb/staylist/internal/listings/http"
	"github.com/rakhimovb/staylist/internal/listings/provider"
)

func newProxyHandler(cfg config.ProviderConfig) http.Handler {
	log, err := logger.New("", "test", "CRITICAL")
	if err != nil {
		panic(err)
	}
	return listingshttp.NewHandler(provider.NewClient(cfg), log)
}

func TestListings_MissingParamsRejectedBeforeOutboundCall(t *testing.T) {
	outboundCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outboundCalls++
		w.Write([]byte(`{"access_token":"tok-a"}`))
	}))
	defer server.Close()

	handler := newProxyHandler(config.ProviderConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthURL:      server.URL,
		ListingsURL:  server.URL,
		Timeout:      time.Second,
	})

	testCases := []string{
		"/listings",
		"/listings?city=Berlin",
		"/listings?city=Berlin&check_in=2026-10-01",
		"/listings?check_in=2026-10-01&check_out=2026-10-05",
	}

	for _, target := range testCases {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for %s, got %d", target, rec.Code)
		}

		var resp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Error != "city, check_in and check_out are required" {
			t.Errorf("unexpected message %q", resp.Error)
		}
	}

	if outboundCalls != 0 {
		t.Errorf("expected no outbound call for invalid params, got %d", outboundCalls)
	}
}

func TestListings_AuthFailureIsGeneric502(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"secret provider detail"}`))
	}))
	defer server.Close()

	handler := newProxyHandler(config.ProviderConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthURL:      server.URL,
		ListingsURL:  server.URL,
		Timeout:      time.Second,
	})

	req := httptest.NewRequest(http.MethodGet, "/listings?city=Berlin&check_in=2026-10-01&check_out=2026-10-05", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret provider detail") {
		t.Error("provider detail must not leak to the caller")
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Failed to fetch listings from provider" {
		t.Errorf("unexpected message %q", resp.Error)
	}
}

func TestListings_MissingCredentialsIs502(t *testing.T) {
	handler := newProxyHandler(config.ProviderConfig{Timeout: time.Second})

	req := httptest.NewRequest(http.MethodGet, "/listings?city=Berlin&check_in=2026-10-01&check_out=2026-10-05", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 when credentials are unset, got %d", rec.Code)
	}
}

func TestListings_RelaysProviderBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok-a"}`))
	})
	mux.HandleFunc("/listings", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"listings":[{"title":"Loft"}],"pagi_info":{"page":1,"per_page":10,"count":1}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	handler := newProxyHandler(config.ProviderConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthURL:      server.URL + "/auth",
		ListingsURL:  server.URL + "/listings",
		Timeout:      time.Second,
	})

	req := httptest.NewRequest(http.MethodGet, "/listings?city=Berlin&check_in=2026-10-01&check_out=2026-10-05", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"title":"Loft"`) {
		t.Errorf("expected the provider body relayed, got %s", rec.Body.String())
	}
}
