package repository

import (
	"context"
	"path/filepath"
	"testing"

	"ctchen222/tictactoe-ai/internal/api/models"
	"ctchen222/tictactoe-ai/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Connect(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	repo := NewUserRepository(conn)

	missing, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	user := &models.User{Username: "alice"}
	require.NoError(t, repo.CreateUser(ctx, user, "secret1"))
	assert.NotZero(t, user.ID)

	stored, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	assert.Error(t, repo.CreateUser(ctx, &models.User{Username: "alice"}, "another"), "usernames are unique")
}
