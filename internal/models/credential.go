package models

import "time"

// Credential is a login record: a unique identifier (email) mapped to a
// bcrypt secret hash and a stable subject id. Records are read-only for the
// lifetime of the process; there is no registration flow in this service.
type Credential struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Identifier string    `bson:"identifier" json:"identifier"` // login email, exact match
	SecretHash string    `bson:"secretHash" json:"-"`
	SubjectID  string    `bson:"subjectId" json:"subjectId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
