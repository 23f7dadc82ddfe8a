package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/shareloop/service-sharing/internal/domain"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
)

// RequestStore is an in-memory implementation of item.RequestRepository.
type RequestStore struct {
	mu       sync.RWMutex
	requests map[int64]itemDomain.Request
	ids      idGenerator
}

// NewRequestStore creates an empty RequestStore.
func NewRequestStore() *RequestStore {
	return &RequestStore{requests: make(map[int64]itemDomain.Request)}
}

// Save persists a new request and assigns its id.
func (s *RequestStore) Save(_ context.Context, r *itemDomain.Request) (*itemDomain.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *r
	saved.ID = s.ids.next()
	s.requests[saved.ID] = saved
	return &saved, nil
}

// FindByID retrieves a request by id.
func (s *RequestStore) FindByID(_ context.Context, id int64) (*itemDomain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("request", strconv.FormatInt(id, 10))
	}
	return &r, nil
}

// FindByRequestorID retrieves a user's own requests, newest first.
func (s *RequestStore) FindByRequestorID(_ context.Context, requestorID int64) ([]itemDomain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(func(r itemDomain.Request) bool { return r.RequestorID == requestorID }), nil
}

// FindAllExcluding retrieves one page of other users' requests, newest first.
func (s *RequestStore) FindAllExcluding(_ context.Context, requestorID int64, page, size int) ([]itemDomain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	requests := s.collect(func(r itemDomain.Request) bool { return r.RequestorID != requestorID })
	return pageSlice(requests, page, size), nil
}

// collect returns matching requests sorted by created descending.
func (s *RequestStore) collect(match func(itemDomain.Request) bool) []itemDomain.Request {
	requests := make([]itemDomain.Request, 0)
	for _, r := range s.requests {
		if match(r) {
			requests = append(requests, r)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].Created.After(requests[j].Created) })
	return requests
}
