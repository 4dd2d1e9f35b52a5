package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/seojin-dev/todo-calendar-api/internal/domain"
	"github.com/seojin-dev/todo-calendar-api/internal/repository/postgres"
	"github.com/seojin-dev/todo-calendar-api/internal/testutil"
)

func newUser(username, email string) *domain.User {
	hash := "hashedpassword"
	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@x.com")))

	tests := []struct {
		name string
		user *domain.User
	}{
		{name: "duplicate username", user: newUser("alice", "alice2@x.com")},
		{name: "duplicate email", user: newUser("alice2", "alice@x.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			require.Error(t, err)
			// The constraint violation is what the auth service keys off
			assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
		})
	}
}

func TestUserRepository_Lookups(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("lookup_user").
		WithEmail("lookup@x.com").
		Build(t, testDB.DB)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)

	byEmail, err := repo.GetByEmail(ctx, "lookup@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := repo.GetByUsername(ctx, "lookup_user")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byUsername.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("update_user").Build(t, testDB.DB)

	user.Username = "updated_user"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated_user", got.Username)
}
