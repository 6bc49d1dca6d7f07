package users

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadSeed_InlineWithPlaintext(t *testing.T) {
	creds, err := LoadSeed("", `[{"email":"a@b.c","password":"secret-pw"}]`)
	assert.NoError(t, err)
	if assert.Len(t, creds, 1) {
		assert.Equal(t, "a@b.c", creds[0].Identifier)
		assert.NotEmpty(t, creds[0].SubjectID, "subject id should be generated")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(creds[0].SecretHash), []byte("secret-pw")))
	}
}

func TestLoadSeed_FileAndInlineAppend(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "users.json")
	err := os.WriteFile(file, []byte(`[{"email":"file@example.com","passwordHash":"$2a$10$fakefakefakefakefakefake","subjectId":"sub-file"}]`), 0o600)
	assert.NoError(t, err)

	creds, err := LoadSeed(file, `[{"email":"inline@example.com","password":"pw123456"}]`)
	assert.NoError(t, err)
	if assert.Len(t, creds, 2) {
		assert.Equal(t, "file@example.com", creds[0].Identifier)
		assert.Equal(t, "sub-file", creds[0].SubjectID)
		assert.Equal(t, "inline@example.com", creds[1].Identifier)
	}
}

func TestLoadSeed_Invalid(t *testing.T) {
	_, err := LoadSeed("", `[{"email":""}]`)
	assert.Error(t, err)

	_, err = LoadSeed("", `[{"email":"x@y.z"}]`)
	assert.Error(t, err, "entry without hash or password must be rejected")

	_, err = LoadSeed("", `not-json`)
	assert.Error(t, err)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)
}

func TestLoadSeed_Empty(t *testing.T) {
	creds, err := LoadSeed("", "")
	assert.NoError(t, err)
	assert.Empty(t, creds)
}
