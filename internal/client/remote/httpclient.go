package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/lumina-journal/lumina/internal/client/models"
	"github.com/lumina-journal/lumina/internal/common"
	"github.com/lumina-journal/lumina/internal/logging"
	"github.com/lumina-journal/lumina/internal/retry"
)

const documentTable = "user_data"

// HTTPClient talks to a Supabase-style store: /auth/v1 for the session
// lifecycle, /rest/v1 for the per-user document row.
type HTTPClient struct {
	baseURL string
	anonKey string
	http    *http.Client
	log     logging.Logger

	upsertRetry retry.Policy

	mu      sync.Mutex
	session *Session
}

// NewHTTPClient builds a store client for the given base URL and anonymous
// key. The clock feeds the upsert retry backoff so tests can simulate it.
func NewHTTPClient(baseURL, anonKey string, clk clock.Clock, log logging.Logger) *HTTPClient {
	p := retry.DefaultPolicy(func(err error) bool {
		return errors.Is(err, common.ErrUnavailable)
	})
	p.Clock = clk
	return &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		anonKey:     anonKey,
		http:        &http.Client{Timeout: 15 * time.Second},
		log:         log,
		upsertRetry: p,
	}
}

// SetSession installs a previously obtained session (e.g. restored from the
// local cache) so subsequent requests are authorized.
func (c *HTTPClient) SetSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

// authResponse is the token endpoint payload.
type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			Username string `json:"username"`
		} `json:"user_metadata"`
	} `json:"user"`
}

func (c *HTTPClient) sessionFromAuth(ar *authResponse) (*Session, error) {
	s := &Session{
		Email:        ar.User.Email,
		DisplayName:  ar.User.UserMetadata.Username,
		AccessToken:  ar.AccessToken,
		RefreshToken: ar.RefreshToken,
	}
	if s.DisplayName == "" {
		s.DisplayName = ar.User.Email
	}
	sub, exp, err := tokenClaims(ar.AccessToken)
	if err != nil {
		return nil, err
	}
	s.UserID = sub
	if s.UserID == "" {
		s.UserID = ar.User.ID
	}
	s.ExpiresAt = exp
	if exp.IsZero() && ar.ExpiresIn > 0 {
		s.ExpiresAt = time.Now().Add(time.Duration(ar.ExpiresIn) * time.Second)
	}
	return s, nil
}

// SignUp registers a new account. The second return value is true when the
// store requires email confirmation before a session is issued.
func (c *HTTPClient) SignUp(ctx context.Context, email, username, password string) (*Session, bool, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]string{"username": username},
	}
	var ar authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/v1/signup", nil, body, &ar); err != nil {
		return nil, false, err
	}
	// No access token in the response means the account exists but awaits
	// email confirmation.
	if ar.AccessToken == "" {
		return nil, true, nil
	}
	s, err := c.sessionFromAuth(&ar)
	if err != nil {
		return nil, false, err
	}
	c.SetSession(s)
	return s, false, nil
}

// SignIn authenticates with email and password.
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var ar authResponse
	q := url.Values{"grant_type": {"password"}}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token", q, body, &ar); err != nil {
		return nil, err
	}
	s, err := c.sessionFromAuth(&ar)
	if err != nil {
		return nil, err
	}
	c.SetSession(s)
	return s, nil
}

// RefreshSession exchanges a refresh token for a new session.
func (c *HTTPClient) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var ar authResponse
	q := url.Values{"grant_type": {"refresh_token"}}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token", q, body, &ar); err != nil {
		return nil, err
	}
	s, err := c.sessionFromAuth(&ar)
	if err != nil {
		return nil, err
	}
	c.SetSession(s)
	return s, nil
}

// SignOut revokes the current session on the store and forgets it locally.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/auth/v1/logout", nil, struct{}{}, nil)
	c.SetSession(nil)
	if err != nil && !errors.Is(err, common.ErrUnauthorized) {
		return err
	}
	return nil
}

// ResendConfirmation asks the store to resend the signup confirmation email.
func (c *HTTPClient) ResendConfirmation(ctx context.Context, email string) error {
	body := map[string]string{"type": "signup", "email": email}
	return c.doJSON(ctx, http.MethodPost, "/auth/v1/resend", nil, body, nil)
}

// Ping probes the auth health endpoint. Used by the connectivity watcher.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/auth/v1/health", nil, nil, nil)
}

// documentRow is the wire shape of the per-user row.
type documentRow struct {
	UserID    string               `json:"user_id"`
	Content   *models.UserDocument `json:"content"`
	UpdatedAt string               `json:"updated_at,omitempty"`
}

// FetchDocument loads the document row for the user. common.ErrNotFound
// means no row exists yet and the caller should seed defaults.
func (c *HTTPClient) FetchDocument(ctx context.Context, userID string) (*models.UserDocument, error) {
	q := url.Values{
		"user_id": {"eq." + userID},
		"select":  {"content"},
	}
	var rows []documentRow
	if err := c.doJSON(ctx, http.MethodGet, "/rest/v1/"+documentTable, q, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].Content == nil {
		return nil, common.ErrNotFound
	}
	return rows[0].Content, nil
}

// UpsertDocument writes the full document for the user, overwriting any
// previous row. Transient failures are retried per the adapter contract;
// auth errors abort immediately.
func (c *HTTPClient) UpsertDocument(ctx context.Context, userID string, doc *models.UserDocument) error {
	row := documentRow{
		UserID:    userID,
		Content:   doc,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	q := url.Values{"on_conflict": {"user_id"}}

	attempt := 0
	err := c.upsertRetry.Do(ctx, func(ctx context.Context) error {
		attempt++
		err := c.doJSON(ctx, http.MethodPost, "/rest/v1/"+documentTable, q, []documentRow{row}, nil)
		if err != nil {
			c.log.Warn(ctx, "document upsert failed", "attempt", attempt, "error", err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	c.log.Debug(ctx, "document saved", "user", userID)
	return nil
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// doJSON performs one HTTP exchange: marshals body (when non-nil), sets the
// store headers, and decodes the response into out (when non-nil). Errors
// are mapped to the shared sentinels.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost && strings.HasPrefix(path, "/rest/") {
		req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorBody is the store's error payload; field names differ between the
// auth and rest surfaces.
type errorBody struct {
	Message          string `json:"message"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (e *errorBody) text() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	default:
		return e.Message
	}
}

func (c *HTTPClient) mapError(resp *http.Response) error {
	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(data, &eb)
	msg := eb.text()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if msg != "" {
			return fmt.Errorf("%w: %s", common.ErrUnauthorized, msg)
		}
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		if msg != "" {
			return fmt.Errorf("%w: %s", common.ErrUnavailable, msg)
		}
		return common.ErrUnavailable
	default:
		if msg != "" {
			return fmt.Errorf("store error (%d): %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("store error (%d)", resp.StatusCode)
	}
}
