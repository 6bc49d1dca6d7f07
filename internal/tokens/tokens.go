package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumichat/lumichat/backend/auth-service/internal/config"
	"github.com/lumichat/lumichat/backend/auth-service/internal/models"
	"github.com/lumichat/lumichat/backend/auth-service/pkg/middleware"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, expiry reached, or wrong token use. Callers must
// not distinguish between these cases.
var ErrInvalidToken = errors.New("invalid session token")

// Token use discriminator, embedded as the "use" claim. An access token
// is never accepted where a refresh token is required and vice versa.
const (
	useAccess  = "access"
	useRefresh = "refresh"
)

type sessionClaims struct {
	Email string `json:"email"`
	Use   string `json:"use"`
	jwt.RegisteredClaims
}

// Service signs and verifies stateless HS256 session tokens. Validity is
// entirely signature + embedded expiry; nothing is stored server-side.
type Service struct {
	secret []byte
	now    func() time.Time
}

// NewService creates a token service bound to the given signing secret.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), now: time.Now}
}

// IssueAccess creates a signed access token with expiry = now + ttl.
func (s *Service) IssueAccess(cred *models.Credential, ttl time.Duration) (string, error) {
	return s.issue(cred, useAccess, ttl)
}

// IssueRefresh creates a signed refresh token with expiry = now + ttl.
func (s *Service) IssueRefresh(cred *models.Credential, ttl time.Duration) (string, error) {
	return s.issue(cred, useRefresh, ttl)
}

func (s *Service) issue(cred *models.Credential, use string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", config.ErrSecretRequired
	}
	now := s.now().UTC()
	claims := sessionClaims{
		Email: cred.Identifier,
		Use:   use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(s.secret)
}

// Verify parses and validates a raw access token and returns the session
// principal. A refresh token is rejected here even while unexpired. There
// is no grace period: a token whose expiry has passed is invalid.
func (s *Service) Verify(raw string) (middleware.Principal, error) {
	return s.verify(raw, useAccess)
}

// VerifyRefresh parses and validates a raw refresh token. An access token
// is rejected here.
func (s *Service) VerifyRefresh(raw string) (middleware.Principal, error) {
	return s.verify(raw, useRefresh)
}

func (s *Service) verify(raw, use string) (middleware.Principal, error) {
	if raw == "" {
		return middleware.Principal{}, ErrInvalidToken
	}
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithTimeFunc(s.now))
	if err != nil || token == nil || !token.Valid {
		return middleware.Principal{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil || claims.Use != use {
		return middleware.Principal{}, ErrInvalidToken
	}
	return middleware.Principal{
		Subject:    claims.Subject,
		Identifier: claims.Email,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
