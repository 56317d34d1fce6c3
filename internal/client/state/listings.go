package state

import (
	"context"
	"sync"

	"github.com/rakhimovb/staylist/internal/client/api"
)

// ListingsStore holds the latest search results plus the pagination
// metadata that drives the pager controls. Overlapping searches race on
// completion order; the last response to resolve wins.
type ListingsStore struct {
	client *api.Client

	mu       sync.RWMutex
	listings []api.Listing
	page     api.Pagination
	loading  bool
	err      string
	onChange []func()
}

func NewListingsStore(client *api.Client) *ListingsStore {
	return &ListingsStore{client: client}
}

func (s *ListingsStore) Search(ctx context.Context, city, checkIn, checkOut string, page int) error {
	s.begin()

	result, err := s.client.SearchListings(ctx, city, checkIn, checkOut, page)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.listings = result.Listings
	s.page = result.Pagination
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *ListingsStore) Listings() []api.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listings := make([]api.Listing, len(s.listings))
	copy(listings, s.listings)
	return listings
}

func (s *ListingsStore) Pagination() api.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// TotalPages derives the page count from the pagination metadata; a missing
// or zero per-page size means everything fits on one page.
func (s *ListingsStore) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.page.PerPage <= 0 || s.page.Count <= 0 {
		return 1
	}
	pages := s.page.Count / s.page.PerPage
	if s.page.Count%s.page.PerPage != 0 {
		pages++
	}
	return pages
}

func (s *ListingsStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ListingsStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ListingsStore) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *ListingsStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

func (s *ListingsStore) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = normalizeError(err)
	s.mu.Unlock()
	s.notify()
}

func (s *ListingsStore) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.onChange))
	copy(listeners, s.onChange)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
