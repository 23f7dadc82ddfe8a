package application

import (
	"context"
	"fmt"

	"github.com/shareloop/service-sharing/internal/clock"
	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"go.uber.org/zap"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// BookingRef is the compact booking reference shown on an item's detail view.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// CommentView is the response representation of a comment.
type CommentView struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"authorName"`
	Created    string `json:"created"`
}

// ItemDetail is an item with the bookings and comments shown on its detail
// view. Last/next bookings are attached for the owner only.
type ItemDetail struct {
	itemDomain.Item
	LastBooking *BookingRef   `json:"lastBooking,omitempty"`
	NextBooking *BookingRef   `json:"nextBooking,omitempty"`
	Comments    []CommentView `json:"comments"`
}

// ItemService manages the item catalog, its comments, and the detail views
// the booking engine feeds.
type ItemService struct {
	items    itemDomain.Repository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	comments itemDomain.CommentRepository
	requests itemDomain.RequestRepository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	comments itemDomain.CommentRepository,
	requests itemDomain.RequestRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		clock:    clk,
		logger:   logger,
	}
}

// Create lists a new item for the caller. A referenced item request must
// exist.
func (s *ItemService) Create(ctx context.Context, callerID int64, req CreateItemRequest) (*itemDomain.Item, error) {
	owner, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it := &itemDomain.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available != nil && *req.Available,
		OwnerID:     owner.ID,
		RequestID:   req.RequestID,
	}
	saved, err := s.items.Save(ctx, it)
	if err != nil {
		return nil, err
	}
	s.logger.Info("item created", zap.Int64("item_id", saved.ID), zap.Int64("owner_id", callerID))
	return saved, nil
}

// Update applies a partial update to an item. Non-owners get a not-found
// answer.
func (s *ItemService) Update(ctx context.Context, callerID, itemID int64, upd itemDomain.Update) (*itemDomain.Item, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, domain.NewNotFoundMessage("item",
			fmt.Sprintf("user %d has no item with id %d", callerID, itemID))
	}

	if upd.Name != nil {
		it.Name = *upd.Name
	}
	if upd.Description != nil {
		it.Description = *upd.Description
	}
	if upd.Available != nil {
		it.Available = *upd.Available
	}
	if upd.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *upd.RequestID); err != nil {
			return nil, err
		}
		it.RequestID = upd.RequestID
	}

	updated, err := s.items.Update(ctx, it)
	if err != nil {
		return nil, err
	}
	s.logger.Info("item updated", zap.Int64("item_id", itemID))
	return updated, nil
}

// Get retrieves an item's detail view. The owner additionally sees the
// item's last and next bookings.
func (s *ItemService) Get(ctx context.Context, itemID, callerID int64) (*ItemDetail, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	detail := &ItemDetail{Item: *it, Comments: []CommentView{}}
	if it.OwnerID == callerID {
		if err := s.attachBookings(ctx, detail); err != nil {
			return nil, err
		}
	}
	if err := s.attachComments(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// ListForOwner retrieves one page of the caller's items with their booking
// references and comments.
func (s *ItemService) ListForOwner(ctx context.Context, callerID int64, from, size int) ([]ItemDetail, error) {
	page, err := pageFor(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwnerID(ctx, callerID, page.Number, page.Size)
	if err != nil {
		return nil, err
	}

	details := make([]ItemDetail, len(items))
	for i, it := range items {
		details[i] = ItemDetail{Item: it, Comments: []CommentView{}}
		if err := s.attachBookings(ctx, &details[i]); err != nil {
			return nil, err
		}
		if err := s.attachComments(ctx, &details[i]); err != nil {
			return nil, err
		}
	}
	return details, nil
}

// Search retrieves one page of available items matching the text. Empty
// text yields an empty result without touching the store.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]itemDomain.Item, error) {
	if text == "" {
		return []itemDomain.Item{}, nil
	}
	page, err := pageFor(from, size)
	if err != nil {
		return nil, err
	}
	return s.items.Search(ctx, text, page.Number, page.Size)
}

// CreateComment lets a user comment on an item they have rented. The rental
// must already be over.
func (s *ItemService) CreateComment(ctx context.Context, callerID, itemID int64, text string) (*CommentView, error) {
	ended, err := s.bookings.FindByBookerEndedBefore(ctx, callerID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	rented := false
	for _, bk := range ended {
		if bk.Item.ID == itemID {
			rented = true
			break
		}
	}
	if !rented {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"user %d has not rented item %d, or the rental is not over yet", callerID, itemID))
	}

	author, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	saved, err := s.comments.Save(ctx, &itemDomain.Comment{
		Text:    text,
		ItemID:  itemID,
		Author:  *author,
		Created: s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("comment created", zap.Int64("item_id", itemID), zap.Int64("author_id", callerID))
	view := toCommentView(*saved)
	return &view, nil
}

func (s *ItemService) attachBookings(ctx context.Context, detail *ItemDetail) error {
	now := s.clock.Now()

	last, err := s.bookings.FindLastForItem(ctx, detail.ID, now)
	if err != nil {
		return err
	}
	if last != nil {
		detail.LastBooking = &BookingRef{ID: last.ID, BookerID: last.Booker.ID}
	}

	next, err := s.bookings.FindNextForItem(ctx, detail.ID, now)
	if err != nil {
		return err
	}
	if next != nil {
		detail.NextBooking = &BookingRef{ID: next.ID, BookerID: next.Booker.ID}
	}
	return nil
}

func (s *ItemService) attachComments(ctx context.Context, detail *ItemDetail) error {
	comments, err := s.comments.FindByItemID(ctx, detail.ID)
	if err != nil {
		return err
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, toCommentView(c))
	}
	return nil
}

func toCommentView(c itemDomain.Comment) CommentView {
	return CommentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.Author.Name,
		Created:    c.Created.Format("2006-01-02T15:04:05"),
	}
}
