package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumichat/lumichat/backend/auth-service/internal/models"
)

// ErrInvalidCredentials is returned for both an unknown identifier and a
// wrong password. Callers surface one generic message so the two failure
// modes stay indistinguishable to clients.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service encapsulates credential lookup and password verification
type Service struct {
	repo CredentialRepository
}

func NewService(r CredentialRepository) *Service {
	return &Service{repo: r}
}

// FindByIdentifier resolves an identifier (email) to its credential record.
// Returns (nil, nil) when no record exists.
func (s *Service) FindByIdentifier(ctx context.Context, identifier string) (*models.Credential, error) {
	return s.repo.FindByIdentifier(ctx, identifier)
}

// GetBySubject resolves a verified token subject back to its credential.
func (s *Service) GetBySubject(ctx context.Context, subject string) (*models.Credential, error) {
	return s.repo.FindBySubject(ctx, subject)
}

// VerifyPassword compares a plaintext secret against the stored bcrypt hash.
// bcrypt's compare primitive is constant-time with respect to the hash.
func (s *Service) VerifyPassword(cred *models.Credential, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte(plaintext)) == nil
}

// Authenticate looks up the identifier and verifies the plaintext secret.
// Both failure modes collapse into ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, identifier, plaintext string) (*models.Credential, error) {
	cred, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("credential lookup: %w", err)
	}
	if cred == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.VerifyPassword(cred, plaintext) {
		return nil, ErrInvalidCredentials
	}
	return cred, nil
}
