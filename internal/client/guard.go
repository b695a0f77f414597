package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRoute is where a denied admin screen sends the user.
const LoginRoute = "/admin/login"

// DefaultAdminRoute is the destination after a login started without one.
const DefaultAdminRoute = "/admin/services"

// Decision is the outcome of a guard check.
type Decision struct {
	Allowed bool
	Token   string // set when Allowed

	// Redirect is LoginRoute when access is denied, and Next the
	// destination to resume after a successful login.
	Redirect string
	Next     string
}

// Guard decides whether an admin screen may be shown.
type Guard struct {
	tokens TokenStore
	now    func() time.Time
}

// NewGuard builds a guard over tokens.
func NewGuard(tokens TokenStore) *Guard {
	return &Guard{tokens: tokens, now: time.Now}
}

// WithClock replaces time.Now, for tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Check grants access when a token is stored and its exp is still ahead.
// Expired or undecodable tokens are cleared. The signature is not checked
// here; the server remains the authority.
func (g *Guard) Check(destination string) (Decision, error) {
	deny := Decision{Redirect: LoginRoute, Next: destination}
	if deny.Next == "" {
		deny.Next = DefaultAdminRoute
	}

	tok, err := g.tokens.Token()
	if err != nil {
		return Decision{}, err
	}
	if tok == "" {
		return deny, nil
	}

	exp, err := TokenExpiry(tok)
	if err != nil || !g.now().Before(exp) {
		if cerr := g.tokens.Clear(); cerr != nil {
			return Decision{}, cerr
		}
		return deny, nil
	}

	return Decision{Allowed: true, Token: tok}, nil
}

// TokenExpiry reads the exp claim without verifying the signature.
func TokenExpiry(raw string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}
