package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shareloop/service-sharing/internal/domain"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	"gorm.io/gorm"
)

// RequestModel is the GORM model for the item_requests table.
type RequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"not null;size:1000"`
	RequestorID int64     `gorm:"index;not null"`
	Created     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "item_requests"
}

// GormRequestRepository is the GORM-based implementation of item.RequestRepository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// Save persists a new request and assigns its id.
func (r *GormRequestRepository) Save(ctx context.Context, req *itemDomain.Request) (*itemDomain.Request, error) {
	model := toRequestModel(req)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}
	return toDomainRequest(model), nil
}

// FindByID retrieves a request by id.
func (r *GormRequestRepository) FindByID(ctx context.Context, id int64) (*itemDomain.Request, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("request", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find request by id: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindByRequestorID retrieves a user's own requests, newest first.
func (r *GormRequestRepository) FindByRequestorID(ctx context.Context, requestorID int64) ([]itemDomain.Request, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find requests by requestor: %w", err)
	}
	return toDomainRequests(models), nil
}

// FindAllExcluding retrieves one page of other users' requests, newest first.
func (r *GormRequestRepository) FindAllExcluding(ctx context.Context, requestorID int64, page, size int) ([]itemDomain.Request, error) {
	var models []RequestModel
	if err := r.db.WithContext(ctx).
		Where("requestor_id <> ?", requestorID).
		Order("created DESC").
		Offset(page * size).
		Limit(size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return toDomainRequests(models), nil
}

func toRequestModel(req *itemDomain.Request) *RequestModel {
	return &RequestModel{
		ID:          req.ID,
		Description: req.Description,
		RequestorID: req.RequestorID,
		Created:     req.Created,
	}
}

func toDomainRequest(m *RequestModel) *itemDomain.Request {
	return &itemDomain.Request{
		ID:          m.ID,
		Description: m.Description,
		RequestorID: m.RequestorID,
		Created:     m.Created,
	}
}

func toDomainRequests(models []RequestModel) []itemDomain.Request {
	requests := make([]itemDomain.Request, len(models))
	for i, m := range models {
		requests[i] = *toDomainRequest(&m)
	}
	return requests
}
