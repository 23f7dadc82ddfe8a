package repository

import (
	"context"
	"fmt"
	"time"

	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Text     string    `gorm:"not null;size:2000"`
	ItemID   int64     `gorm:"index;not null"`
	AuthorID int64     `gorm:"index;not null"`
	Created  time.Time `gorm:"not null"`

	Author UserModel `gorm:"foreignKey:AuthorID"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of item.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment and assigns its id.
func (r *GormCommentRepository) Save(ctx context.Context, c *itemDomain.Comment) (*itemDomain.Comment, error) {
	model := &CommentModel{
		Text:     c.Text,
		ItemID:   c.ItemID,
		AuthorID: c.Author.ID,
		Created:  c.Created,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	saved := *c
	saved.ID = model.ID
	return &saved, nil
}

// FindByItemID retrieves all comments on an item with their authors.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID int64) ([]itemDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id = ?", itemID).
		Order("created ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments by item: %w", err)
	}

	comments := make([]itemDomain.Comment, len(models))
	for i, m := range models {
		comments[i] = itemDomain.Comment{
			ID:      m.ID,
			Text:    m.Text,
			ItemID:  m.ItemID,
			Author:  *toDomainUser(&m.Author),
			Created: m.Created,
		}
	}
	return comments, nil
}
