package memory

import (
	"context"
	"sort"
	"sync"

	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
)

// CommentStore is an in-memory implementation of item.CommentRepository.
type CommentStore struct {
	mu       sync.RWMutex
	comments map[int64]itemDomain.Comment
	ids      idGenerator
}

// NewCommentStore creates an empty CommentStore.
func NewCommentStore() *CommentStore {
	return &CommentStore{comments: make(map[int64]itemDomain.Comment)}
}

// Save persists a new comment and assigns its id.
func (s *CommentStore) Save(_ context.Context, c *itemDomain.Comment) (*itemDomain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *c
	saved.ID = s.ids.next()
	s.comments[saved.ID] = saved
	return &saved, nil
}

// FindByItemID retrieves all comments on an item, oldest first.
func (s *CommentStore) FindByItemID(_ context.Context, itemID int64) ([]itemDomain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := make([]itemDomain.Comment, 0)
	for _, c := range s.comments {
		if c.ItemID == itemID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Created.Before(comments[j].Created) })
	return comments, nil
}
