package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"item-feedback-api/internal/domain"
	"item-feedback-api/pkg/utils"
)

type NewRating struct {
	UserID      string
	ItemID      string
	Score       float64
	Description *string
}

// RatingPatch Description 指向 "" 表示清空
type RatingPatch struct {
	Score       *float64
	Description *string
}

type ListQuery struct {
	UserID  string
	ItemID  string
	Page    int
	PerPage int
}

type RatingService struct {
	users   domain.UserRepository
	ratings domain.RatingRepository
	log     *zap.Logger
}

func NewRatingService(users domain.UserRepository, ratings domain.RatingRepository, log *zap.Logger) *RatingService {
	return &RatingService{users: users, ratings: ratings, log: log}
}

func (s *RatingService) Create(ctx context.Context, actor string, in NewRating) (string, error) {
	if err := requireID(in.UserID, "user_id"); err != nil {
		return "", err
	}
	if err := requireOwner(actor, in.UserID, "rating"); err != nil {
		return "", err
	}
	if in.ItemID == "" {
		return "", domain.Validation("item_id is required")
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return "", lookupErr(err, "user")
	}

	r := &domain.Rating{
		ID:          utils.NewID(),
		UserID:      in.UserID,
		ItemID:      in.ItemID,
		Score:       in.Score,
		Description: normDescription(in.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.Validate(); err != nil {
		return "", err
	}

	_, err := s.ratings.FindByUserItem(ctx, in.UserID, in.ItemID)
	switch {
	case err == nil:
		return "", domain.Conflict("Rating already exists for this item")
	case !errors.Is(err, domain.ErrNotFound):
		return "", domain.Internal("failed to check existing rating", err)
	}

	if err := s.ratings.Create(ctx, r); err != nil {
		// 并发插入时以唯一索引为准
		if errors.Is(err, domain.ErrDuplicate) {
			return "", domain.Conflict("Rating already exists for this item")
		}
		return "", domain.Internal("failed to create rating", err)
	}
	s.log.Info("rating created", zap.String("rating_id", r.ID), zap.String("user_id", r.UserID))
	return r.ID, nil
}

func (s *RatingService) List(ctx context.Context, lq ListQuery) (*domain.Page[domain.Rating], error) {
	if lq.UserID != "" {
		if err := requireID(lq.UserID, "user_id"); err != nil {
			return nil, err
		}
	}
	q := domain.NormalizePage(lq.Page, lq.PerPage)
	items, total, err := s.ratings.List(ctx, domain.RatingFilter{UserID: lq.UserID, ItemID: lq.ItemID}, q.Offset(), q.PerPage)
	if err != nil {
		return nil, domain.Internal("failed to list ratings", err)
	}
	if items == nil {
		items = []domain.Rating{}
	}
	return &domain.Page[domain.Rating]{Items: items, Meta: domain.NewPageMeta(q, total)}, nil
}

func (s *RatingService) Get(ctx context.Context, id string) (*domain.Rating, error) {
	if err := requireID(id, "rating id"); err != nil {
		return nil, err
	}
	r, err := s.ratings.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "rating")
	}
	return r, nil
}

// Update changed=false 时不写库，调用方回 "No changes made"
func (s *RatingService) Update(ctx context.Context, actor, id string, p RatingPatch) (*domain.Rating, bool, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if err := requireOwner(actor, existing.UserID, "rating"); err != nil {
		return nil, false, err
	}
	if p.Score == nil && p.Description == nil {
		return nil, false, domain.Validation("No valid fields to update")
	}

	merged := *existing
	if p.Score != nil {
		merged.Score = *p.Score
	}
	if p.Description != nil {
		merged.Description = normDescription(p.Description)
	}
	if err := merged.Validate(); err != nil {
		return nil, false, err
	}
	if merged.Score == existing.Score && sameString(merged.Description, existing.Description) {
		return existing, false, nil
	}

	if err := s.ratings.Update(ctx, &merged); err != nil {
		return nil, false, lookupErr(err, "rating")
	}
	fresh, err := s.ratings.FindByID(ctx, id)
	if err != nil {
		return nil, false, lookupErr(err, "rating")
	}
	return fresh, true, nil
}

func (s *RatingService) Delete(ctx context.Context, actor, id string) (string, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := requireOwner(actor, existing.UserID, "rating"); err != nil {
		return "", err
	}
	if err := s.ratings.Delete(ctx, id); err != nil {
		return "", lookupErr(err, "rating")
	}
	s.log.Info("rating deleted", zap.String("rating_id", id))
	return id, nil
}

func normDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	v := *d
	return &v
}
