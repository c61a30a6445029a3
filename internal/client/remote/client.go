// Package remote is the adapter to the hosted document store. The store
// keeps exactly one row per user holding the whole document as an opaque
// blob; upserts overwrite unconditionally, last write wins. Auth and row
// access both travel over the store's REST surface.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/common"
)

// Session is an authenticated store session.
type Session struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the access token has expired (with a small margin
// so a token about to lapse is refreshed up front).
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt.Add(-30*time.Second))
}

// Client defines the operations the core needs from the document store.
//
// Contract:
//   - FetchDocument fails with common.ErrNotFound when no row exists yet
//     (callers seed defaults) or common.ErrUnavailable on transport trouble.
//   - UpsertDocument retries transient transport failures up to 3 attempts
//     with exponential backoff (1s, 2s, 4s) before reporting failure; auth
//     and permission errors are reported immediately, never retried.
//   - All methods honor context cancellation.
type Client interface {
	SignUp(ctx context.Context, email, username, password string) (*Session, bool, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
	ResendConfirmation(ctx context.Context, email string) error
	SetSession(s *Session)
	FetchDocument(ctx context.Context, userID string) (*models.UserDocument, error)
	UpsertDocument(ctx context.Context, userID string, doc *models.UserDocument) error
	Ping(ctx context.Context) error
	Close() error
}

// tokenClaims extracts the subject (user id) and expiry from a store access
// token. The token is not verified locally; the signing key lives on the
// store side and the token is only decoded for bookkeeping.
func tokenClaims(accessToken string) (userID string, expiresAt time.Time, err error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return claims.Subject, expiresAt, nil
}
