package service

import (
	"context"
	"testing"
	"time"

	"github.com/tidylabs/tasklist/internal/tasklist/domain"
	"github.com/tidylabs/tasklist/internal/tasklist/store"
	"github.com/tidylabs/tasklist/internal/tasklist/store/drivers/sqlite"
	"github.com/tidylabs/tasklist/pkg/idx"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a migrated in-memory sqlite store.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore("file::memory:?_time_format=sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// createTestUser inserts a user row directly; list and task rows need one to
// satisfy the user_id foreign key.
func createTestUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	user := domain.User{
		ID:                   idx.New().String(),
		Email:                username + "@example.com",
		Username:             username,
		PasswordHash:         "$argon2id$v=19$m=65536,t=3,p=2$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g",
		NotificationSettings: map[string]any{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func timePtr(t time.Time) *time.Time { return &t }
