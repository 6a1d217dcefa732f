package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	profileID := uuid.New()

	token, err := svc.Issue(profileID)
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, profileID, got)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewJWTService("secret", time.Nanosecond)

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
