package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumichat/lumichat/backend/auth-service/internal/models"
)

// CredentialRepository defines lookup operations over the credential set.
// Implementations return (nil, nil) when no record matches.
type CredentialRepository interface {
	FindByIdentifier(ctx context.Context, identifier string) (*models.Credential, error)
	FindBySubject(ctx context.Context, subject string) (*models.Credential, error)
}

// MongoCredentialRepository implements CredentialRepository using MongoDB.
// Lookups are exact and case-sensitive, matching the in-memory repository.
type MongoCredentialRepository struct {
	col *mongo.Collection
}

// NewMongoCredentialRepository creates a repository for the given collection
func NewMongoCredentialRepository(col *mongo.Collection) *MongoCredentialRepository {
	return &MongoCredentialRepository{col: col}
}

func (r *MongoCredentialRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.Credential, error) {
	var c models.Credential
	if err := r.col.FindOne(ctx, bson.M{"identifier": identifier}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoCredentialRepository) FindBySubject(ctx context.Context, subject string) (*models.Credential, error) {
	var c models.Credential
	if err := r.col.FindOne(ctx, bson.M{"subjectId": subject}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
