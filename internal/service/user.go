package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"item-feedback-api/internal/domain"
	"item-feedback-api/pkg/utils"
)

// UserPatch nil 表示不修改
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

func (p UserPatch) empty() bool { return p.Name == nil && p.Email == nil && p.Password == nil }

type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.UserView, error) {
	if err := requireID(id, "user id"); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	v := u.View()
	return &v, nil
}

func (s *UserService) List(ctx context.Context, page, perPage int) (*domain.Page[domain.UserView], error) {
	q := domain.NormalizePage(page, perPage)
	users, total, err := s.users.List(ctx, q.Offset(), q.PerPage)
	if err != nil {
		return nil, domain.Internal("failed to list users", err)
	}
	views := make([]domain.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return &domain.Page[domain.UserView]{Items: views, Meta: domain.NewPageMeta(q, total)}, nil
}

// Update 返回 changed=false 表示提交的值与现有一致，未写库
func (s *UserService) Update(ctx context.Context, actor, id string, p UserPatch) (*domain.UserView, bool, error) {
	if err := requireID(id, "user id"); err != nil {
		return nil, false, err
	}
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, false, lookupErr(err, "user")
	}
	if err := requireOwner(actor, existing.ID, "user"); err != nil {
		return nil, false, err
	}
	if p.empty() {
		return nil, false, domain.Validation("No valid fields to update")
	}

	merged := *existing
	changed := false
	if p.Name != nil && *p.Name != existing.Name {
		merged.Name = *p.Name
		changed = true
	}
	if p.Email != nil && *p.Email != existing.Email {
		if err := domain.ValidateEmail(*p.Email); err != nil {
			return nil, false, err
		}
		// 预查询只是为了更早给出 409，最终以唯一索引为准
		other, err := s.users.FindByEmail(ctx, *p.Email)
		switch {
		case err == nil && other.ID != existing.ID:
			return nil, false, domain.Conflict("Email already exists")
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, false, domain.Internal("failed to check email", err)
		}
		merged.Email = *p.Email
		changed = true
	}
	if p.Password != nil {
		if err := domain.ValidatePassword(*p.Password); err != nil {
			return nil, false, err
		}
		hash, err := utils.HashPassword(*p.Password)
		if err != nil {
			return nil, false, domain.Internal("failed to hash password", err)
		}
		merged.PasswordHash = hash
		changed = true
	}
	if !changed {
		v := existing.View()
		return &v, false, nil
	}

	if err := s.users.Update(ctx, &merged); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, false, domain.Conflict("Email already exists")
		}
		return nil, false, lookupErr(err, "user")
	}
	fresh, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, false, lookupErr(err, "user")
	}
	s.log.Info("user updated", zap.String("user_id", id))
	v := fresh.View()
	return &v, true, nil
}

// Delete 不级联删除该用户的 rating / comment
func (s *UserService) Delete(ctx context.Context, actor, id string) (string, error) {
	if err := requireID(id, "user id"); err != nil {
		return "", err
	}
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", lookupErr(err, "user")
	}
	if err := requireOwner(actor, existing.ID, "user"); err != nil {
		return "", err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return "", lookupErr(err, "user")
	}
	s.log.Info("user deleted", zap.String("user_id", id))
	return id, nil
}
