// Package identity wraps the identity provider's REST credential exchange.
// The admin SDK verifies tokens server-side; this client performs the
// email/password and custom-token exchanges the admin SDK does not offer.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jobnav-app/jobnav-backend/internal/auth/domain"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com"

// Session is the provider's credential bundle for a signed-in principal.
type Session struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an identity client. An empty baseURL selects the real
// endpoint; tests point it at a local server.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SignUp creates a new email/password account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.exchange(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithPassword exchanges email/password credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	return c.exchange(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithCustomToken exchanges a bootstrap custom token for a session.
func (c *Client) SignInWithCustomToken(ctx context.Context, token string) (*Session, error) {
	return c.exchange(ctx, "accounts:signInWithCustomToken", map[string]any{
		"token":             token,
		"returnSecureToken": true,
	})
}

type exchangeResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) exchange(ctx context.Context, endpoint string, payload map[string]any) (*Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
		}
		return nil, mapProviderError(errResp.Error.Message)
	}

	var out exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	session := &Session{
		UID:          out.LocalID,
		Email:        out.Email,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
	}
	if out.ExpiresIn != "" {
		if d, err := time.ParseDuration(out.ExpiresIn + "s"); err == nil {
			session.ExpiresIn = d
		}
	}
	return session, nil
}

// mapProviderError translates the provider's error codes into the normalized
// taxonomy. Unknown codes fall back to the normalized raw text so the UI
// never renders machine-readable noise.
func mapProviderError(message string) error {
	code := message
	if i := strings.Index(code, " : "); i >= 0 {
		code = code[:i]
	}

	switch code {
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return domain.ErrInvalidEmail
	case "WEAK_PASSWORD", "MISSING_PASSWORD":
		return domain.ErrWeakPassword
	case "EMAIL_EXISTS":
		return domain.ErrEmailInUse
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_CUSTOM_TOKEN":
		return domain.ErrInvalidCredentials
	case "EMAIL_NOT_FOUND", "USER_NOT_FOUND", "USER_DISABLED":
		return domain.ErrUserNotFound
	default:
		msg := domain.NormalizeProviderMessage(message)
		if msg == "" {
			// The provider sent an error envelope with no usable text;
			// never surface a blank message on the form.
			msg = "Authentication failed."
		}
		return &domain.AuthError{
			Code:    "auth-failed",
			Message: msg,
		}
	}
}
