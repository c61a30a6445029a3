package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lumina-journal/lumina/internal/client/remote"
	"github.com/lumina-journal/lumina/internal/common"
)

func (a *App) register(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return
	}
	username, err := getSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return
	}

	needsConfirmation, err := a.authService.Register(ctx, email, username, password)
	if err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	if needsConfirmation {
		fmt.Println("Check your inbox: a confirmation email was sent. Use 'resend' if it does not arrive.")
		a.pendingEmail = email
		return
	}
	fmt.Println("Registered and signed in.")
	a.afterLogin(ctx)
}

func (a *App) login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return
	}

	session, err := a.authService.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnauthorized):
			fmt.Println("Invalid credentials or unconfirmed account.")
			a.pendingEmail = email
		case errors.Is(err, common.ErrUnavailable):
			fmt.Println("Store unreachable. Try 'unlock' to open your cached journal offline.")
		default:
			fmt.Println("Login failed:", err)
		}
		return
	}
	a.session = session
	a.afterLogin(ctx)
}

// offlineUnlock opens the locally cached journal when the store is down.
// Edits stay in the dirty cache until connectivity returns.
func (a *App) offlineUnlock(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return
	}

	userID, err := a.authService.OfflineUnlock(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrLocalDataOnly):
			fmt.Println("No cached data for this account; sign in online first.")
		case errors.Is(err, common.ErrUnauthorized):
			fmt.Println("Invalid credentials.")
		default:
			fmt.Println("Unlock failed:", err)
		}
		return
	}

	a.session = &remote.Session{UserID: userID, Email: email, DisplayName: email}
	a.offline = true
	a.loadDocument(ctx)
	if a.session != nil {
		fmt.Println("Journal unlocked from local cache (offline).")
	}
}

func (a *App) afterLogin(ctx context.Context) {
	if a.session == nil {
		// Register() signs in through the auth service; refresh our view.
		if s, err := a.authService.RestoreSession(ctx); err == nil {
			a.session = s
		}
	}
	if a.session == nil {
		return
	}
	a.loadDocument(ctx)
	if a.session != nil {
		fmt.Printf("Welcome, %s!\n", a.session.DisplayName)
	}
}

func (a *App) resendConfirmation(ctx context.Context) {
	email := a.pendingEmail
	if email == "" {
		var err error
		email, err = getSimpleText(a.reader, "Email", os.Stdout)
		if err != nil {
			return
		}
	}

	err := a.authService.ResendConfirmation(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrCooldownActive) {
			fmt.Println("Please wait before requesting another email:", err)
		} else {
			fmt.Println("Resend failed:", err)
		}
		return
	}
	fmt.Println("Confirmation email sent to", email)
}

func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return
	}
	if err := a.authService.Logout(ctx); err != nil {
		fmt.Println("Logout warning:", err)
	}
	// Disarm before reset so no further writes can observe the cleared state.
	a.coordinator.Disarm()
	a.store.Reset()
	a.session = nil
	a.offline = false
	fmt.Println("Logged out.")
}
