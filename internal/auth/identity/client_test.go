package identity_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobnav-app/jobnav-backend/internal/auth/domain"
	"github.com/jobnav-app/jobnav-backend/internal/auth/identity"
)

func fakeProvider(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func providerError(code string) string {
	b, _ := json.Marshal(map[string]any{"error": map[string]any{"message": code}})
	return string(b)
}

func TestSignInWithPassword_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req["email"])
		assert.Equal(t, true, req["returnSecureToken"])

		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{
			"localId": "uid-123",
			"email": "user@example.com",
			"idToken": "id-token",
			"refreshToken": "refresh-token",
			"expiresIn": "3600"
		}`)
	}))
	defer server.Close()

	c := identity.NewClient("test-key", server.URL)
	session, err := c.SignInWithPassword(context.Background(), "user@example.com", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, "uid-123", session.UID)
	assert.Equal(t, "user@example.com", session.Email)
	assert.Equal(t, "id-token", session.IDToken)
	assert.Equal(t, "refresh-token", session.RefreshToken)
	assert.Equal(t, "1h0m0s", session.ExpiresIn.String())
}

func TestSignUp_ErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name     string
		provider string
		want     *domain.AuthError
	}{
		{"duplicate account", "EMAIL_EXISTS", domain.ErrEmailInUse},
		{"malformed email", "INVALID_EMAIL", domain.ErrInvalidEmail},
		{"weak password with detail", "WEAK_PASSWORD : Password should be at least 6 characters", domain.ErrWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := fakeProvider(t, http.StatusBadRequest, providerError(tc.provider))
			defer server.Close()

			c := identity.NewClient("test-key", server.URL)
			_, err := c.SignUp(context.Background(), "user@example.com", "pw")
			require.Error(t, err)

			var authErr *domain.AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tc.want.Code, authErr.Code)
		})
	}
}

func TestSignInWithPassword_BadCredentials(t *testing.T) {
	server := fakeProvider(t, http.StatusBadRequest, providerError("INVALID_LOGIN_CREDENTIALS"))
	defer server.Close()

	c := identity.NewClient("test-key", server.URL)
	_, err := c.SignInWithPassword(context.Background(), "user@example.com", "wrong")

	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, domain.ErrInvalidCredentials.Code, authErr.Code)
}

func TestExchange_ProviderUnreachable(t *testing.T) {
	c := identity.NewClient("test-key", "http://127.0.0.1:1")
	_, err := c.SignInWithPassword(context.Background(), "user@example.com", "pw")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnreachable))
}

func TestUnknownProviderCodeIsNormalized(t *testing.T) {
	server := fakeProvider(t, http.StatusBadRequest, providerError("OPERATION_NOT_ALLOWED : Sign-in disabled"))
	defer server.Close()

	c := identity.NewClient("test-key", server.URL)
	_, err := c.SignUp(context.Background(), "user@example.com", "pw")

	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "OPERATION_NOT_ALLOWED", authErr.Message)
	assert.NotContains(t, authErr.Message, " : ")
}

func TestEmptyProviderMessageGetsGenericText(t *testing.T) {
	server := fakeProvider(t, http.StatusBadRequest, providerError(""))
	defer server.Close()

	c := identity.NewClient("test-key", server.URL)
	_, err := c.SignUp(context.Background(), "user@example.com", "pw")

	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "auth-failed", authErr.Code)
	assert.NotEmpty(t, authErr.Message)
}

func TestNormalizeProviderMessage(t *testing.T) {
	assert.Equal(t,
		"Error",
		domain.NormalizeProviderMessage("Firebase: Error (auth/invalid-credential)."),
	)
	assert.Equal(t,
		"WEAK_PASSWORD",
		domain.NormalizeProviderMessage("WEAK_PASSWORD : Password should be at least 6 characters"),
	)
}
