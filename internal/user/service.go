package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/logger"

	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("email", input.Email),
	)

	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperr.New(apperr.KindValidation, "invalid email")
	}
	if len(input.Password) < 8 {
		return nil, "", apperr.New(apperr.KindValidation, "password must be at least 8 characters")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		Name:         input.Name,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailExists) {
			log.Warn("duplicate registration")
			return nil, "", apperr.New(apperr.KindConflictState, "email already registered")
		}
		log.Error("failed to create user", zap.Error(err))
		return nil, "", err
	}

	token, err := GenerateJWT(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	log.Info("user registered", zap.Uint("user_id", u.ID))
	return u, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("email", email),
	)

	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Warn("login for unknown email")
			return nil, "", apperr.New(apperr.KindAuthRequired, "invalid email or password")
		}
		return nil, "", err
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		log.Warn("wrong password")
		return nil, "", apperr.New(apperr.KindAuthRequired, "invalid email or password")
	}

	token, err := GenerateJWT(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}

	log.Info("user logged in", zap.Uint("user_id", u.ID))
	return u, token, nil
}
