package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"item-feedback-api/internal/domain"
)

var _ domain.RatingRepository = (*RatingRepo)(nil)

type RatingRepo struct{ db *gorm.DB }

func NewRatingRepo(db *gorm.DB) *RatingRepo { return &RatingRepo{db: db} }

// Create 命中 unique_user_item_rating 时返回 domain.ErrDuplicate
func (r *RatingRepo) Create(ctx context.Context, rt *domain.Rating) error {
	if err := r.db.WithContext(ctx).Create(rt).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func (r *RatingRepo) FindByID(ctx context.Context, id string) (*domain.Rating, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *RatingRepo) FindByUserItem(ctx context.Context, userID, itemID string) (*domain.Rating, error) {
	return r.first(r.db.WithContext(ctx).Where("user_id = ? AND item_id = ?", userID, itemID))
}

func (r *RatingRepo) first(q *gorm.DB) (*domain.Rating, error) {
	var rt domain.Rating
	err := q.First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return &rt, nil
}

func (r *RatingRepo) List(ctx context.Context, f domain.RatingFilter, offset, limit int) ([]domain.Rating, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Rating{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ItemID != "" {
		q = q.Where("item_id = ?", f.ItemID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}
	items := make([]domain.Rating, 0, limit)
	if err := q.Session(&gorm.Session{}).Order("created_at ASC").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	return items, total, nil
}

// Update 只写可变列：rating / description
func (r *RatingRepo) Update(ctx context.Context, rt *domain.Rating) error {
	if err := r.db.WithContext(ctx).Model(rt).Select("rating", "description").Updates(rt).Error; err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

func (r *RatingRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Rating{})
	if res.Error != nil {
		return fmt.Errorf("delete rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
