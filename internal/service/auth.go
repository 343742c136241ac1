package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

const tokenIssuer = "trip-catalog"

// AuthConfig holds the single admin account and token settings.
// An empty PasswordHash disables admin login entirely.
type AuthConfig struct {
	Email        string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

// AuthService checks admin credentials and issues and verifies the signed
// session tokens that guard every admin route.
type AuthService struct {
	cfg AuthConfig
	log *slog.Logger
	now func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg AuthConfig, log *slog.Logger) *AuthService {
	return &AuthService{cfg: cfg, log: log, now: time.Now}
}

// Enabled reports whether an admin account is configured.
func (s *AuthService) Enabled() bool {
	return s.cfg.PasswordHash != "" && len(s.cfg.Secret) > 0
}

// Token is an issued admin session.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login verifies email and password and returns a signed token.
// Returns domain.ErrUnauthorized for any credential mismatch and
// domain.ErrUnavailable when no admin account is configured.
func (s *AuthService) Login(ctx context.Context, email, password string) (Token, error) {
	if !s.Enabled() {
		return Token{}, fmt.Errorf("service.AuthService.Login: %w: admin login not configured", domain.ErrUnavailable)
	}

	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(s.cfg.Email)),
	) == 1
	// Always run bcrypt so a wrong email costs the same as a wrong password.
	pwErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password))
	if !emailOK || pwErr != nil {
		s.log.WarnContext(ctx, "admin login failed", "email", email)
		return Token{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	now := s.now()
	exp := now.Add(s.cfg.TTL)
	claims := jwt.RegisteredClaims{
		Subject:   s.cfg.Email,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return Token{}, fmt.Errorf("service.AuthService.Login: sign: %w", err)
	}

	s.log.InfoContext(ctx, "admin login", "email", s.cfg.Email)
	return Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: exp.UTC()}, nil
}

// Verify parses a token issued by Login and returns its subject.
// Returns domain.ErrUnauthorized for malformed, forged or expired tokens.
func (s *AuthService) Verify(raw string) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("service.AuthService.Verify: %w: admin login not configured", domain.ErrUnauthorized)
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return s.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("service.AuthService.Verify: %w: token expired", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("service.AuthService.Verify: %w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject != s.cfg.Email {
		return "", fmt.Errorf("service.AuthService.Verify: %w: unknown subject", domain.ErrUnauthorized)
	}
	return claims.Subject, nil
}
