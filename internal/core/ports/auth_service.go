package ports

import (
	"context"
	"time"

	"github.com/trendwyse/dashboard/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Role     string // empty = analyst
}

type AuthService interface {
	// Register creates the user and returns a session token for it.
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the token identified by tokenID until it would have expired.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// TokenDenylist records revoked session tokens.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
