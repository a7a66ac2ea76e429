package user

import (
	"fmt"
	"time"

	"handimatch/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

// Authenticate verifies the credentials and issues a session token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger().Named("user")

	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := utils.CacheAuthToken(u.ID, token); err != nil {
		// The token is still valid without the cache entry; sessions
		// just cannot be revoked until the cache comes back.
		logger.Warn("failed to cache auth token", zap.Error(err))
	}

	return &AuthResponse{
		ID:       u.ID,
		Token:    token,
		Email:    u.Email,
		UserType: u.UserType,
		Name:     u.DisplayName(),
		Photo:    u.Photo,
	}, nil
}
