package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"item-feedback-api/internal/core/auth"
	"item-feedback-api/internal/domain"
	"item-feedback-api/pkg/utils"
)

type TokenManager interface {
	Issue(uid, email string) (string, error)
	Parse(token string) (*auth.Claims, error)
}

var _ TokenManager = (*auth.JWTer)(nil)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthResult struct {
	Token string
	User  domain.UserView
}

type AuthService struct {
	users  domain.UserRepository
	tokens TokenManager
	log    *zap.Logger
}

func NewAuthService(users domain.UserRepository, tokens TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register 邮箱唯一性只依赖存储层唯一索引，不做预查询
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Internal("failed to hash password", err)
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("Email already exists")
		}
		return nil, domain.Internal("failed to create user", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return s.issue(u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		s.log.Info("login rejected", zap.String("user_id", u.ID))
		return nil, domain.Auth("Invalid password")
	}
	return s.issue(u)
}

// Verify 签名错误、过期、issuer 不符都归为 AuthError
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	c, err := s.tokens.Parse(token)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindAuth, Msg: "invalid or expired token", Err: err}
	}
	return c, nil
}

func (s *AuthService) issue(u *domain.User) (*AuthResult, error) {
	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, domain.Internal("failed to issue token", err)
	}
	return &AuthResult{Token: tok, User: u.View()}, nil
}
