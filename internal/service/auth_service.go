package service

import (
	"context"
	"strings"

	"usergate/internal/repository"
	"usergate/internal/utils"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type AuthService struct {
	users        repository.UserRepository
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
}

func NewAuthService(users repository.UserRepository, passwordHash PasswordHasher, accessTokens AccessTokenIssuer) *AuthService {
	return &AuthService{
		users:        users,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
	}
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a comparison so unknown emails cost the same as bad passwords.
		_ = s.passwordHash.Verify(dummyPasswordHash, password)
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresIn: int64(ttl.Seconds())}, nil
}
