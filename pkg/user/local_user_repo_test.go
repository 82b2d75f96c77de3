package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocalUserRepo(t *testing.T) (context.Context, *LocalUserRepo, string) {
	dir := t.TempDir()
	repo, err := NewLocalUserRepo(dir)
	require.NoError(t, err)
	return context.Background(), repo, dir
}

func TestLocalUserRepo_CreateAndFind(t *testing.T) {
	// given
	ctx, repo, _ := setupLocalUserRepo(t)
	created, err := repo.Create(ctx, testUserRecord("anna@example.com"))
	require.NoError(t, err)

	// when
	byId, err := repo.FindById(ctx, created.Id)
	require.NoError(t, err)
	byEmail, err := repo.FindByEmail(ctx, "anna@example.com")
	require.NoError(t, err)

	// then
	assert.Equal(t, created, byId)
	assert.Equal(t, created, byEmail)
}

func TestLocalUserRepo_RejectsTakenEmail(t *testing.T) {
	ctx, repo, _ := setupLocalUserRepo(t)
	_, err := repo.Create(ctx, testUserRecord("anna@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testUserRecord("anna@example.com"))

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLocalUserRepo_SurvivesReopen(t *testing.T) {
	// given
	ctx, repo, dir := setupLocalUserRepo(t)
	created, err := repo.Create(ctx, testUserRecord("anna@example.com"))
	require.NoError(t, err)

	// when
	reopened, err := NewLocalUserRepo(dir)
	require.NoError(t, err)
	found, err := reopened.FindById(ctx, created.Id)

	// then
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestLocalUserRepo_Update(t *testing.T) {
	t.Run("should change display name and timezone only", func(t *testing.T) {
		// given
		ctx, repo, _ := setupLocalUserRepo(t)
		created, err := repo.Create(ctx, testUserRecord("anna@example.com"))
		require.NoError(t, err)

		// when
		created.DisplayName = "Anna K."
		created.Timezone = "UTC"
		updated, err := repo.Update(ctx, created)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Anna K.", updated.DisplayName)
		assert.Equal(t, "UTC", updated.Timezone)
		assert.Equal(t, "anna@example.com", updated.Email)
	})

	t.Run("should return ErrUserNotFound for a missing user", func(t *testing.T) {
		ctx, repo, _ := setupLocalUserRepo(t)

		_, err := repo.Update(ctx, testUserRecord("ghost@example.com"))

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
