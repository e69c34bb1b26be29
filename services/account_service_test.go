package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	user, err := svc.Register("alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, user.CheckPassword("secret1"))
}

func TestRegister_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "al", "alice@x.com", "secret1"},
		{"email without at", "alice", "alice.example.com", "secret1"},
		{"email too short", "alice", "a@b", "secret1"},
		{"short password", "alice", "alice@x.com", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.username, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	_, err := svc.Register("alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other@x.com", "secret1")
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	_, err = svc.Register("other", "alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	registered, err := svc.Register("alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	byUsername, err := svc.Authenticate("alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byUsername.ID)

	byEmail, err := svc.Authenticate("alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, byEmail.ID)

	_, err = svc.Authenticate("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
