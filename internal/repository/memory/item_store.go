package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shareloop/service-sharing/internal/domain"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
)

// ItemStore is an in-memory implementation of item.Repository.
type ItemStore struct {
	mu    sync.RWMutex
	items map[int64]itemDomain.Item
	ids   idGenerator
}

// NewItemStore creates an empty ItemStore.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[int64]itemDomain.Item)}
}

// Save persists a new item and assigns its id.
func (s *ItemStore) Save(_ context.Context, it *itemDomain.Item) (*itemDomain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *it
	saved.ID = s.ids.next()
	s.items[saved.ID] = saved
	return &saved, nil
}

// Update persists changes to an existing item.
func (s *ItemStore) Update(_ context.Context, it *itemDomain.Item) (*itemDomain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *it
	s.items[saved.ID] = saved
	return &saved, nil
}

// FindByID retrieves an item by id.
func (s *ItemStore) FindByID(_ context.Context, id int64) (*itemDomain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", strconv.FormatInt(id, 10))
	}
	return &it, nil
}

// FindByOwnerID retrieves one page of a user's items, id ascending.
func (s *ItemStore) FindByOwnerID(_ context.Context, ownerID int64, page, size int) ([]itemDomain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.collect(func(it itemDomain.Item) bool { return it.OwnerID == ownerID })
	return pageSlice(items, page, size), nil
}

// Search retrieves one page of available items matching the text in name or
// description, case-insensitive.
func (s *ItemStore) Search(_ context.Context, text string, page, size int) ([]itemDomain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(text)
	items := s.collect(func(it itemDomain.Item) bool {
		return it.Available &&
			(strings.Contains(strings.ToLower(it.Name), needle) ||
				strings.Contains(strings.ToLower(it.Description), needle))
	})
	return pageSlice(items, page, size), nil
}

// FindByRequestID retrieves the items created in answer to a request.
func (s *ItemStore) FindByRequestID(_ context.Context, requestID int64) ([]itemDomain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(it itemDomain.Item) bool {
		return it.RequestID != nil && *it.RequestID == requestID
	}), nil
}

// collect returns matching items sorted by id ascending.
func (s *ItemStore) collect(match func(itemDomain.Item) bool) []itemDomain.Item {
	items := make([]itemDomain.Item, 0)
	for _, it := range s.items {
		if match(it) {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// pageSlice cuts one zero-based page out of a sorted slice.
func pageSlice[T any](all []T, page, size int) []T {
	offset := page * size
	if offset >= len(all) {
		return []T{}
	}
	end := offset + size
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
