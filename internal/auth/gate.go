// Package auth implements the single-admin authentication gate: credential
// check, token issuance and bearer token verification.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
)

const (
	// DefaultTokenTTL is how long an issued token stays valid.
	DefaultTokenTTL = 2 * time.Hour
	// DefaultIssuer is written to the iss claim.
	DefaultIssuer = "statuspage"

	bearerScheme = "bearer"
)

// Config holds the admin identity and signing material. It is read-only
// once the Gate is built.
type Config struct {
	Username     string        // admin username (exact, case-sensitive)
	Password     string        // admin password in clear, ignored when PasswordHash is set
	PasswordHash string        // optional bcrypt hash of the admin password
	Secret       string        // HMAC signing secret
	TokenTTL     time.Duration // 0 => DefaultTokenTTL
	Issuer       string        // "" => DefaultIssuer
}

// Claims is the payload of a session token.
type Claims struct {
	Username string `json:"username"`
	jwtlib.RegisteredClaims
}

// Token is a freshly minted session token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"-"`
}

// Option customizes a Gate.
type Option func(*Gate)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// Gate validates the admin credential pair and issues/verifies tokens.
// It keeps no per-session state.
type Gate struct {
	cfg    Config
	secret []byte
	now    func() time.Time
}

// New builds a Gate from cfg.
func New(cfg Config, opts ...Option) (*Gate, error) {
	if cfg.Username == "" {
		return nil, errors.New("auth: admin username must be set")
	}
	if cfg.Password == "" && cfg.PasswordHash == "" {
		return nil, errors.New("auth: admin password or password hash must be set")
	}
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("auth: invalid password hash: %w", err)
		}
	}
	if cfg.Secret == "" {
		return nil, errors.New("auth: signing secret must be set")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}

	g := &Gate{
		cfg:    cfg,
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// TokenTTL returns the validity window of issued tokens.
func (g *Gate) TokenTTL() time.Duration { return g.cfg.TokenTTL }

// Login checks username/password against the configured admin pair and
// returns a signed token on success. The error never says which field was
// wrong.
func (g *Gate) Login(username, password string) (*Token, error) {
	// Evaluate both sides so timing does not reveal which one failed.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1
	passOK := g.checkPassword(password)
	if !userOK || !passOK {
		return nil, domain.ErrInvalidCredentials
	}
	return g.issue(username)
}

func (g *Gate) checkPassword(password string) bool {
	if g.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.cfg.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password)) == 1
}

func (g *Gate) issue(username string) (*Token, error) {
	now := g.now()
	expiresAt := now.Add(g.cfg.TokenTTL)

	claims := Claims{
		Username: username,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    g.cfg.Issuer,
			Subject:   username,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Token{Value: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// VerifyHeader checks an Authorization header value of the form
// "Bearer <token>".
func (g *Gate) VerifyHeader(header string) (*Claims, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return nil, domain.ErrMissingCredential
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, domain.ErrMissingCredential
	}
	return g.Verify(raw)
}

// Verify checks the signature and expiry of a raw token. A token is valid
// strictly before its exp instant.
func (g *Gate) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(raw, claims, g.keyFunc,
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidOrExpiredCredential, err)
	}
	return claims, nil
}

func (g *Gate) keyFunc(t *jwtlib.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return g.secret, nil
}
