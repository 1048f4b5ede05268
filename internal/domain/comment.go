package domain

import (
	"context"
	"time"
	"unicode/utf8"
)

const MaxContentLength = 1000

type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID    string    `gorm:"size:36;not null;index" bson:"user_id" json:"user_id"`
	ItemID    string    `gorm:"size:191;not null;index" bson:"item_id" json:"item_id"`
	Content   string    `gorm:"type:text;not null" bson:"content" json:"content"`
	CreatedAt time.Time `gorm:"index;precision:6" bson:"created_at" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) Validate() error {
	if c.Content == "" {
		return Validation("Content cannot be empty")
	}
	if utf8.RuneCountInString(c.Content) > MaxContentLength {
		return Validation("Content must be at most 1000 characters")
	}
	return nil
}

type CommentFilter struct {
	UserID string
	ItemID string
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	FindByID(ctx context.Context, id string) (*Comment, error)
	List(ctx context.Context, f CommentFilter, offset, limit int) ([]Comment, int64, error)
	Update(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id string) error
}
