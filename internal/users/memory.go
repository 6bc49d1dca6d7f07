package users

import (
	"context"

	"github.com/lumichat/lumichat/backend/auth-service/internal/models"
)

// MemoryRepository holds the preloaded credential set in process memory.
// The set is immutable after construction so lookups need no locking.
type MemoryRepository struct {
	byIdentifier map[string]*models.Credential
	bySubject    map[string]*models.Credential
}

// NewMemoryRepository builds a repository from the preloaded credentials.
// Later duplicates of an identifier or subject id silently win, matching
// last-entry-wins seed semantics.
func NewMemoryRepository(creds []models.Credential) *MemoryRepository {
	r := &MemoryRepository{
		byIdentifier: make(map[string]*models.Credential, len(creds)),
		bySubject:    make(map[string]*models.Credential, len(creds)),
	}
	for i := range creds {
		c := creds[i]
		r.byIdentifier[c.Identifier] = &c
		r.bySubject[c.SubjectID] = &c
	}
	return r
}

func (r *MemoryRepository) FindByIdentifier(_ context.Context, identifier string) (*models.Credential, error) {
	return r.byIdentifier[identifier], nil
}

func (r *MemoryRepository) FindBySubject(_ context.Context, subject string) (*models.Credential, error) {
	return r.bySubject[subject], nil
}

// Len reports the number of distinct identifiers loaded.
func (r *MemoryRepository) Len() int { return len(r.byIdentifier) }
