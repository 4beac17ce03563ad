// Package admin guards the /api/admin routes with a shared password and bearer tokens.
package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDisabled is returned by Login when no admin credentials are configured.
	ErrDisabled         = errors.New("admin authentication is not configured")
	ErrInvalidPassword  = errors.New("admin password does not match")
	ErrPasswordTooShort = errors.New("admin password must be at least 8 characters")
)

const minPasswordLength = 8

// PasswordCost is the bcrypt cost used for ADMIN_PASSWORD_HASH.
const PasswordCost = 12

// NewPasswordHash returns the value for ADMIN_PASSWORD_HASH.
func NewPasswordHash(password string, cost int) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(hash), nil
}

// Config is the admin credential configuration.
type Config struct {
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

// Service checks the admin password and issues tokens.
type Service struct {
	passwordHash string
	tokens       *TokenManager
	logger       zerolog.Logger
}

// NewService returns a Service. Authentication is enabled only when both the password
// hash and the signing secret are set.
func NewService(cfg Config, logger zerolog.Logger) *Service {
	s := &Service{logger: logger.With().Str("component", "admin").Logger()}
	if cfg.PasswordHash != "" && cfg.JWTSecret != "" {
		s.passwordHash = cfg.PasswordHash
		s.tokens = NewTokenManager(TokenConfig{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL})
	}
	return s
}

// Enabled reports whether admin routes require a token.
func (s *Service) Enabled() bool { return s.tokens != nil }

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login exchanges the admin password for an access token.
func (s *Service) Login(password string) (TokenResponse, error) {
	if !s.Enabled() {
		return TokenResponse{}, ErrDisabled
	}
	if err := s.checkPassword(password); err != nil {
		return TokenResponse{}, err
	}
	token, err := s.tokens.Issue()
	if err != nil {
		return TokenResponse{}, err
	}
	s.logger.Info().Msg("admin login")
	return TokenResponse{AccessToken: token, ExpiresIn: int64(s.tokens.TTL().Seconds())}, nil
}

func (s *Service) checkPassword(password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		s.logger.Warn().Msg("admin login rejected")
	default:
		s.logger.Error().Err(err).Msg("ADMIN_PASSWORD_HASH is not a usable bcrypt hash")
	}
	return ErrInvalidPassword
}

// Authorize validates a bearer token. It always succeeds when authentication is disabled.
func (s *Service) Authorize(token string) error {
	if !s.Enabled() {
		return nil
	}
	_, err := s.tokens.Validate(token)
	return err
}
