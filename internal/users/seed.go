package users

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumichat/lumichat/backend/auth-service/internal/models"
)

// seedRecord is one entry of the preloaded credential set. Either a bcrypt
// passwordHash or a plaintext password (hashed at load, dev only) must be
// present; subjectId is generated when absent.
type seedRecord struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Password     string `json:"password"`
	SubjectID    string `json:"subjectId"`
}

// LoadSeed reads the credential seed from a JSON file and/or an inline JSON
// string (both are arrays of seed records; inline entries are appended).
func LoadSeed(file, inline string) ([]models.Credential, error) {
	var records []seedRecord
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read users file: %w", err)
		}
		if err := json.Unmarshal(b, &records); err != nil {
			return nil, fmt.Errorf("parse users file: %w", err)
		}
	}
	if inline != "" {
		var extra []seedRecord
		if err := json.Unmarshal([]byte(inline), &extra); err != nil {
			return nil, fmt.Errorf("parse users seed: %w", err)
		}
		records = append(records, extra...)
	}

	now := time.Now().UTC()
	creds := make([]models.Credential, 0, len(records))
	for i, rec := range records {
		if rec.Email == "" {
			return nil, fmt.Errorf("users seed entry %d: email is required", i)
		}
		hash := rec.PasswordHash
		if hash == "" {
			if rec.Password == "" {
				return nil, fmt.Errorf("users seed entry %d: passwordHash or password is required", i)
			}
			b, err := bcrypt.GenerateFromPassword([]byte(rec.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("users seed entry %d: hash password: %w", i, err)
			}
			hash = string(b)
		}
		sub := rec.SubjectID
		if sub == "" {
			sub = uuid.NewString()
		}
		creds = append(creds, models.Credential{
			Identifier: rec.Email,
			SecretHash: hash,
			SubjectID:  sub,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return creds, nil
}
