package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingCredentials is returned when username or password is absent
	ErrMissingCredentials = errors.New("username and password required")

	// ErrInvalidCredentials is returned when the login check fails
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service issues and verifies admin bearer tokens.
type Service struct {
	username     string
	passwordHash string
	secret       []byte
	tokenTTL     time.Duration
}

// NewService builds an auth service for the fixed administrator identity.
// passwordHash is the sha256 hex digest of the admin password.
func NewService(username, passwordHash, secret string, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{
		username:     username,
		passwordHash: passwordHash,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

// Login validates the credentials and returns a signed token with its
// lifetime in seconds.
func (s *Service) Login(username, password string) (string, int64, error) {
	if username == "" || password == "" {
		return "", 0, ErrMissingCredentials
	}

	sum := sha256.Sum256([]byte(password))
	hash := hex.EncodeToString(sum[:])
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(hash), []byte(s.passwordHash)) == 1
	if !userOK || !passOK {
		return "", 0, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.tokenTTL.Seconds()), nil
}
