package application

import (
	"context"
	"fmt"

	"github.com/shareloop/service-sharing/internal/clock"
	"github.com/shareloop/service-sharing/internal/domain"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"go.uber.org/zap"
)

// CreateRequestRequest holds the data needed to ask for a missing item.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestView is a request with the items listed in answer to it.
type RequestView struct {
	itemDomain.Request
	Items []itemDomain.Item `json:"items"`
}

// RequestService manages item requests.
type RequestService struct {
	requests itemDomain.RequestRepository
	items    itemDomain.Repository
	users    userDomain.Repository
	clock    clock.Clock
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests itemDomain.RequestRepository,
	items itemDomain.Repository,
	users userDomain.Repository,
	clk clock.Clock,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		items:    items,
		users:    users,
		clock:    clk,
		logger:   logger,
	}
}

// Create records a new item request for the caller.
func (s *RequestService) Create(ctx context.Context, callerID int64, req CreateRequestRequest) (*itemDomain.Request, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}

	saved, err := s.requests.Save(ctx, &itemDomain.Request{
		Description: req.Description,
		RequestorID: callerID,
		Created:     s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("item request created", zap.Int64("request_id", saved.ID), zap.Int64("requestor_id", callerID))
	return saved, nil
}

// ListOwn retrieves the caller's own requests, newest first, each with the
// items answering it.
func (s *RequestService) ListOwn(ctx context.Context, callerID int64) ([]RequestView, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByRequestorID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

// ListOthers retrieves one page of other users' requests, newest first.
func (s *RequestService) ListOthers(ctx context.Context, callerID int64, from, size int) ([]RequestView, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	page, err := pageFor(from, size)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.FindAllExcluding(ctx, callerID, page.Number, page.Size)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, requests)
}

// Get retrieves a single request with its items. Any existing user may look.
func (s *RequestService) Get(ctx context.Context, callerID, requestID int64) (*RequestView, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	views, err := s.toViews(ctx, []itemDomain.Request{*req})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RequestService) requireUser(ctx context.Context, userID int64) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFoundError("user", fmt.Sprintf("%d", userID))
	}
	return nil
}

func (s *RequestService) toViews(ctx context.Context, requests []itemDomain.Request) ([]RequestView, error) {
	views := make([]RequestView, len(requests))
	for i, req := range requests {
		items, err := s.items.FindByRequestID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		views[i] = RequestView{Request: req, Items: items}
	}
	return views, nil
}
