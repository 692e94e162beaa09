package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookshelf/internal/platform/crypto"
)

type Service struct {
	repo     Repository
	secret   string
	tokenTTL time.Duration
}

func NewService(repo Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register stores a new user and returns it with a token. The password must
// already satisfy the password policy.
func (s *Service) Register(ctx context.Context, username, password string) (AuthUser, error) {
	if len(password) > crypto.MaxPasswordBytes {
		return AuthUser{}, ErrPasswordTooLong
	}

	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return AuthUser{}, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return AuthUser{}, err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return AuthUser{}, fmt.Errorf("hash password: %w", err)
	}

	newUser := &User{Username: username, PasswordHash: hash}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return AuthUser{}, err
	}

	return s.authenticated(*newUser)
}

// Login checks the credentials and mints a new token. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (AuthUser, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthUser{}, ErrInvalidCredentials
		}
		return AuthUser{}, err
	}
	if !crypto.VerifyPassword(u.PasswordHash, password) {
		return AuthUser{}, ErrInvalidCredentials
	}

	return s.authenticated(u)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) authenticated(u User) (AuthUser, error) {
	token, _, err := crypto.GenerateToken(s.secret, u.ID, s.tokenTTL)
	if err != nil {
		return AuthUser{}, fmt.Errorf("generate token: %w", err)
	}
	return AuthUser{ID: u.ID, Username: u.Username, Token: token}, nil
}
