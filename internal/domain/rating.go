package domain

import (
	"context"
	"time"
	"unicode/utf8"
)

const (
	MinScore             = 1
	MaxScore             = 5
	MaxDescriptionLength = 500
)

type Rating struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID      string    `gorm:"size:36;not null;uniqueIndex:unique_user_item_rating,priority:1" bson:"user_id" json:"user_id"`
	ItemID      string    `gorm:"size:191;not null;uniqueIndex:unique_user_item_rating,priority:2;index" bson:"item_id" json:"item_id"`
	Score       float64   `gorm:"column:rating;not null" bson:"rating" json:"rating"`
	Description *string   `gorm:"size:2000" bson:"description" json:"description"`
	CreatedAt   time.Time `gorm:"index;precision:6" bson:"created_at" json:"created_at"`
}

func (Rating) TableName() string { return "ratings" }

func (r *Rating) Validate() error {
	if r.Score < MinScore || r.Score > MaxScore {
		return Validation("Rating must be between 1 and 5")
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > MaxDescriptionLength {
		return Validation("Description must be at most 500 characters")
	}
	return nil
}

// RatingFilter 空字段表示不过滤
type RatingFilter struct {
	UserID string
	ItemID string
}

type RatingRepository interface {
	Create(ctx context.Context, r *Rating) error
	FindByID(ctx context.Context, id string) (*Rating, error)
	FindByUserItem(ctx context.Context, userID, itemID string) (*Rating, error)
	List(ctx context.Context, f RatingFilter, offset, limit int) ([]Rating, int64, error)
	Update(ctx context.Context, r *Rating) error
	Delete(ctx context.Context, id string) error
}
