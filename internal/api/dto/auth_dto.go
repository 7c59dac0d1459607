package dto

import (
	"time"

	"github.com/shelfcam/shelfcam-api/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     string `json:"role" validate:"required,oneof=staff manager admin"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse is the public view of an account. The stored credential
// is never echoed.
type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse maps a domain account to its public fields.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
	}
}

// LoginResponse is the documented login payload.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	ExpiresAt   time.Time `json:"expires_at"`
}
