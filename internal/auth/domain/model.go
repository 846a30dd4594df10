package domain

import (
	"errors"
	"strings"
)

// Principal is the authenticated identity owning a set of records. It is
// created on successful sign-in or sign-up and cleared on sign-out.
type Principal struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}

// ErrAuthInProgress rejects a duplicate submission while another
// authentication call is still in flight.
var ErrAuthInProgress = errors.New("an authentication request is already in progress")

// AuthError is a normalized, user-displayable authentication failure.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	ErrInvalidEmail        = &AuthError{Code: "invalid-email", Message: "The email address is not valid."}
	ErrWeakPassword        = &AuthError{Code: "weak-password", Message: "The password is too weak. Use at least 6 characters."}
	ErrEmailInUse          = &AuthError{Code: "email-in-use", Message: "An account already exists for this email address."}
	ErrInvalidCredentials  = &AuthError{Code: "invalid-credentials", Message: "Incorrect email or password."}
	ErrUserNotFound        = &AuthError{Code: "user-not-found", Message: "No account exists for this email address."}
	ErrProviderUnreachable = &AuthError{Code: "provider-unreachable", Message: "The sign-in service is currently unreachable. Try again shortly."}
)

// NormalizeProviderMessage strips provider-specific noise from raw error
// text: the "Firebase: " prefix, parenthetical "(auth/...)" codes, and
// machine-readable " : detail" suffixes. The result is safe to show inline
// on the sign-in form.
func NormalizeProviderMessage(msg string) string {
	msg = strings.TrimPrefix(msg, "Firebase: ")
	if i := strings.Index(msg, " : "); i >= 0 {
		msg = msg[:i]
	}
	if open := strings.Index(msg, "(auth"); open >= 0 {
		if close := strings.Index(msg[open:], ")"); close >= 0 {
			msg = msg[:open] + msg[open+close+1:]
		}
	}
	msg = strings.TrimSuffix(strings.TrimSpace(msg), ".")
	return strings.TrimSpace(msg)
}
