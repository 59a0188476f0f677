package sessionx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("test-secret"), "tasklist", time.Hour)

	token, err := m.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.NoError(t, err)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	a := NewManager([]byte("secret-a"), "tasklist", time.Hour)
	b := NewManager([]byte("secret-b"), "tasklist", time.Hour)

	token, err := a.Issue("user-1")
	require.NoError(t, err)

	_, err = b.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	a := NewManager([]byte("shared"), "service-a", time.Hour)
	b := NewManager([]byte("shared"), "service-b", time.Hour)

	token, err := a.Issue("user-1")
	require.NoError(t, err)

	_, err = b.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("test-secret"), "tasklist", -time.Minute)

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("test-secret"), "tasklist", time.Hour)
	_, err := m.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
