// Package services contains the application services of the Lumina client:
// the auth/session lifecycle and the document load/export/import flows that
// sit between the CLI and the store adapter.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lumina-journal/lumina/internal/client/cache"
	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/client/remote"
	"github.com/lumina-journal/lumina/internal/common"
	"github.com/lumina-journal/lumina/internal/cryptox"
	"github.com/lumina-journal/lumina/internal/logging"
)

// DefaultResendCooldown is the client-enforced wait between confirmation
// emails, independent of anything the store does.
const DefaultResendCooldown = 60 * time.Second

// AuthService owns the session lifecycle.
//
// Contract:
//   - Register creates the account and, when a session is issued right
//     away, seeds the default document.
//   - Login authenticates online and caches offline-unlock material.
//   - OfflineUnlock opens the locally cached journal when the store is
//     unreachable; it returns the user id the cached document belongs to.
//   - RestoreSession revives a cached session at startup, refreshing the
//     tokens when expired.
//   - ResendConfirmation enforces a local cooldown before each resend.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (needsConfirmation bool, err error)
	Login(ctx context.Context, email, password string) (*remote.Session, error)
	OfflineUnlock(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*remote.Session, error)
	ResendConfirmation(ctx context.Context, email string) error
}

type authService struct {
	client remote.Client
	cache  *cache.Cache
	clk    clock.Clock
	log    logging.Logger

	cooldown time.Duration

	mu         sync.Mutex
	lastResend map[string]time.Time
}

// NewAuthService constructs an AuthService bound to the store client and
// local cache.
func NewAuthService(client remote.Client, c *cache.Cache, clk clock.Clock, log logging.Logger) AuthService {
	return &authService{
		client:     client,
		cache:      c,
		clk:        clk,
		log:        log,
		cooldown:   DefaultResendCooldown,
		lastResend: map[string]time.Time{},
	}
}

func (a *authService) Register(ctx context.Context, email, username, password string) (bool, error) {
	session, needsConfirmation, err := a.client.SignUp(ctx, email, username, password)
	if err != nil {
		return false, fmt.Errorf("sign up: %w", err)
	}
	if needsConfirmation {
		return true, nil
	}

	// Seed the initial document row. A failure here is not fatal for
	// registration; the next auto-save cycle recreates it.
	doc := models.DefaultDocument()
	doc.DisplayName = username
	if err := a.client.UpsertDocument(ctx, session.UserID, doc); err != nil {
		a.log.Warn(ctx, "failed to seed initial document", "error", err)
	}

	a.afterAuth(ctx, session, password)
	return false, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*remote.Session, error) {
	session, err := a.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	a.afterAuth(ctx, session, password)
	return session, nil
}

// afterAuth caches the session and the offline-unlock material derived from
// the password. Cache failures only degrade offline behavior, so they are
// logged and swallowed.
func (a *authService) afterAuth(ctx context.Context, session *remote.Session, password string) {
	if err := a.cache.PutSession(session); err != nil {
		a.log.Warn(ctx, "failed to cache session", "error", err)
	}

	salt := cryptox.GenerateSalt(32)
	key := cryptox.DeriveUnlockKey([]byte(password), salt)
	verifier := cryptox.MakeVerifier(key)
	cryptox.Wipe(key)
	if err := a.cache.PutUnlock(session.Email, session.UserID, salt, verifier); err != nil {
		a.log.Warn(ctx, "failed to cache unlock material", "error", err)
	}
}

func (a *authService) OfflineUnlock(ctx context.Context, email, password string) (string, error) {
	userID, salt, verifier, err := a.cache.GetUnlock(email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrLocalDataOnly
		}
		return "", err
	}
	if !cryptox.VerifyUnlock([]byte(password), salt, verifier) {
		return "", common.ErrUnauthorized
	}
	a.log.Info(ctx, "offline unlock", "user", userID)
	return userID, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.cache.ClearSession(); err != nil {
		a.log.Warn(ctx, "failed to clear cached session", "error", err)
	}
	if err := a.client.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (a *authService) RestoreSession(ctx context.Context) (*remote.Session, error) {
	session, err := a.cache.GetSession()
	if err != nil {
		return nil, common.ErrNoSession
	}

	if session.Expired(a.clk.Now()) {
		refreshed, err := a.client.RefreshSession(ctx, session.RefreshToken)
		if err != nil {
			if errors.Is(err, common.ErrUnavailable) {
				// Keep the stale session; the caller may still open the
				// cached document offline.
				return session, fmt.Errorf("refresh session: %w", err)
			}
			_ = a.cache.ClearSession()
			return nil, fmt.Errorf("refresh session: %w", err)
		}
		if refreshed.DisplayName == "" {
			refreshed.DisplayName = session.DisplayName
		}
		session = refreshed
		if err := a.cache.PutSession(session); err != nil {
			a.log.Warn(ctx, "failed to cache refreshed session", "error", err)
		}
	} else {
		a.client.SetSession(session)
	}
	return session, nil
}

func (a *authService) ResendConfirmation(ctx context.Context, email string) error {
	a.mu.Lock()
	last, ok := a.lastResend[email]
	now := a.clk.Now()
	if ok && now.Sub(last) < a.cooldown {
		remaining := a.cooldown - now.Sub(last)
		a.mu.Unlock()
		return fmt.Errorf("%w: wait %s", common.ErrCooldownActive, remaining.Round(time.Second))
	}
	a.lastResend[email] = now
	a.mu.Unlock()

	if err := a.client.ResendConfirmation(ctx, email); err != nil {
		return fmt.Errorf("resend confirmation: %w", err)
	}
	return nil
}
