package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shelfcam/shelfcam-api/internal/auth"
	"github.com/shelfcam/shelfcam-api/internal/domain"
	"github.com/shelfcam/shelfcam-api/internal/repository"
	apperrors "github.com/shelfcam/shelfcam-api/pkg/util"
)

// AuthService coordinates signup, login and logout flows.
type AuthService struct {
	accounts repository.AccountRepository
	tokenMgr *auth.TokenManager
	hasher   *auth.PasswordHasher
	denylist auth.TokenDenylist
}

// NewAuthService builds the service.
func NewAuthService(accounts repository.AccountRepository, tokenMgr *auth.TokenManager, hasher *auth.PasswordHasher, denylist auth.TokenDenylist) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokenMgr: tokenMgr,
		hasher:   hasher,
		denylist: denylist,
	}
}

// Signup creates a new account. Duplicate usernames surface as Conflict.
func (s *AuthService) Signup(ctx context.Context, username, email, password string, role domain.Role) (*domain.Account, error) {
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already registered", map[string]any{
			"username": username,
		})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username: username,
		Email:    strings.TrimSpace(email),
		Password: stored,
		Role:     role,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login authenticates an account and issues a session token. A missing
// account and a wrong password produce the identical error so callers
// cannot enumerate usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := s.hasher.Verify(account.Password, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.Issue(account.Username, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, expiresAt, nil
}

// Logout revokes the presented token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil || s.denylist == nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	return s.denylist.Revoke(ctx, claims.ID, remaining)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
