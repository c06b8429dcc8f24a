package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/prudhivi99/storefront/internal/auth"
	"github.com/prudhivi99/storefront/internal/models"
)

// AuthService validates credentials and hands out token pairs. Token
// cryptography lives in the auth package; this layer only owns the
// credential check.
type AuthService struct {
	users  UserStore
	tokens *auth.TokenManager
}

func NewAuthService(users UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// ObtainToken authenticates and issues an access/refresh pair. Missing
// fields are the caller's problem (checked before this is reached); a wrong
// username and a wrong password are indistinguishable on purpose.
func (s *AuthService) ObtainToken(ctx context.Context, username, password string) (*models.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &AuthError{Message: "Invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &AuthError{Message: "Invalid credentials"}
	}

	access, refresh, err := s.tokens.IssuePair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", &AuthError{Message: "Invalid refresh token"}
	}

	return s.tokens.IssueAccess(claims.UserID, claims.Username)
}

// EnsureUser creates the user when absent, used by startup seeding.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, username, string(hash))
}
