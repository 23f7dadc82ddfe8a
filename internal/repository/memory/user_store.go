package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/shareloop/service-sharing/internal/domain"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
)

// UserStore is an in-memory implementation of user.Repository.
type UserStore struct {
	mu    sync.RWMutex
	users map[int64]userDomain.User
	ids   idGenerator
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]userDomain.User)}
}

// Save persists a new user and assigns its id.
func (s *UserStore) Save(_ context.Context, u *userDomain.User) (*userDomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, domain.NewConflictError(fmt.Sprintf("email %s is already in use", u.Email))
		}
	}

	saved := *u
	saved.ID = s.ids.next()
	s.users[saved.ID] = saved
	return &saved, nil
}

// Update persists changes to an existing user.
func (s *UserStore) Update(_ context.Context, u *userDomain.User) (*userDomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return nil, domain.NewConflictError(fmt.Sprintf("email %s is already in use", u.Email))
		}
	}

	saved := *u
	s.users[saved.ID] = saved
	return &saved, nil
}

// FindByID retrieves a user by id.
func (s *UserStore) FindByID(_ context.Context, id int64) (*userDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", strconv.FormatInt(id, 10))
	}
	return &u, nil
}

// ExistsByID reports whether a user with the given id exists.
func (s *UserStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

// FindAll retrieves all users, id ascending.
func (s *UserStore) FindAll(_ context.Context) ([]userDomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]userDomain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Delete removes a user by id.
func (s *UserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	return nil
}
