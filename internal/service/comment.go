package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"item-feedback-api/internal/domain"
	"item-feedback-api/pkg/utils"
)

type NewComment struct {
	UserID  string
	ItemID  string
	Content string
}

type CommentService struct {
	users    domain.UserRepository
	comments domain.CommentRepository
	log      *zap.Logger
}

func NewCommentService(users domain.UserRepository, comments domain.CommentRepository, log *zap.Logger) *CommentService {
	return &CommentService{users: users, comments: comments, log: log}
}

func (s *CommentService) Create(ctx context.Context, actor string, in NewComment) (string, error) {
	if err := requireID(in.UserID, "user_id"); err != nil {
		return "", err
	}
	if err := requireOwner(actor, in.UserID, "comment"); err != nil {
		return "", err
	}
	if in.ItemID == "" {
		return "", domain.Validation("item_id is required")
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return "", lookupErr(err, "user")
	}

	c := &domain.Comment{
		ID:        utils.NewID(),
		UserID:    in.UserID,
		ItemID:    in.ItemID,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return "", domain.Internal("failed to create comment", err)
	}
	s.log.Info("comment created", zap.String("comment_id", c.ID), zap.String("user_id", c.UserID))
	return c.ID, nil
}

func (s *CommentService) List(ctx context.Context, lq ListQuery) (*domain.Page[domain.Comment], error) {
	if lq.UserID != "" {
		if err := requireID(lq.UserID, "user_id"); err != nil {
			return nil, err
		}
	}
	q := domain.NormalizePage(lq.Page, lq.PerPage)
	items, total, err := s.comments.List(ctx, domain.CommentFilter{UserID: lq.UserID, ItemID: lq.ItemID}, q.Offset(), q.PerPage)
	if err != nil {
		return nil, domain.Internal("failed to list comments", err)
	}
	if items == nil {
		items = []domain.Comment{}
	}
	return &domain.Page[domain.Comment]{Items: items, Meta: domain.NewPageMeta(q, total)}, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*domain.Comment, error) {
	if err := requireID(id, "comment id"); err != nil {
		return nil, err
	}
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "comment")
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, actor, id string, content *string) (*domain.Comment, bool, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if err := requireOwner(actor, existing.UserID, "comment"); err != nil {
		return nil, false, err
	}
	if content == nil {
		return nil, false, domain.Validation("No valid fields to update")
	}

	merged := *existing
	merged.Content = *content
	if err := merged.Validate(); err != nil {
		return nil, false, err
	}
	if merged.Content == existing.Content {
		return existing, false, nil
	}

	if err := s.comments.Update(ctx, &merged); err != nil {
		return nil, false, lookupErr(err, "comment")
	}
	fresh, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, false, lookupErr(err, "comment")
	}
	return fresh, true, nil
}

func (s *CommentService) Delete(ctx context.Context, actor, id string) (string, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := requireOwner(actor, existing.UserID, "comment"); err != nil {
		return "", err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return "", lookupErr(err, "comment")
	}
	s.log.Info("comment deleted", zap.String("comment_id", id))
	return id, nil
}
