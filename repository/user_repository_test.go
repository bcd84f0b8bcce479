package repository

import (
	"context"
	"testing"

	"dinedash/internal/testutil"
	"dinedash/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CRUDAndQueries(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Email: "a@x.com", Name: "Jane", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, models.RoleManager, u.Role)

	g, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, "a@x.com", g.Email)

	g2, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, g2)
	assert.Equal(t, u.ID, g2.ID)

	// email match is exact
	g3, err := repo.GetByEmail(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Nil(t, g3)

	testutil.SetUserRole(t, db, u.ID, models.RoleCustomer)
	g4, _ := repo.GetByID(ctx, u.ID)
	assert.Equal(t, models.RoleCustomer, g4.Role)

	testutil.DeleteUser(t, db, u.ID)
	gone, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testutil.OpenInMemoryDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "dup@x.com", Name: "One", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "dup@x.com", Name: "Two", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)
}
