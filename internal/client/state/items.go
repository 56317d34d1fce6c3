package state

import (
	"context"
	"sync"

	"github.com/rakhimovb/staylist/internal/client/api"
)

// ItemsStore holds the caller's item collection. Fetch replaces the
// collection, create appends, update splices the record in by id, delete
// filters it out.
type ItemsStore struct {
	client *api.Client

	mu       sync.RWMutex
	items    []api.Item
	loading  bool
	err      string
	onChange []func()
}

func NewItemsStore(client *api.Client) *ItemsStore {
	return &ItemsStore{client: client}
}

func (s *ItemsStore) Fetch(ctx context.Context) error {
	s.begin()

	items, err := s.client.ListItems(ctx)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.items = items
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *ItemsStore) Create(ctx context.Context, name, description string) error {
	s.begin()

	item, err := s.client.CreateItem(ctx, name, description)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	s.items = append(s.items, item)
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *ItemsStore) Update(ctx context.Context, id, name, description string) error {
	s.begin()

	item, err := s.client.UpdateItem(ctx, id, name, description)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = item
			break
		}
	}
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *ItemsStore) Delete(ctx context.Context, id string) error {
	s.begin()

	if err := s.client.DeleteItem(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *ItemsStore) Items() []api.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]api.Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *ItemsStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ItemsStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ItemsStore) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *ItemsStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
	s.notify()
}

func (s *ItemsStore) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = normalizeError(err)
	s.mu.Unlock()
	s.notify()
}

func (s *ItemsStore) notify() {
	s.mu.RLock()
	listeners := make([]func(), len(s.onChange))
	copy(listeners, s.onChange)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
