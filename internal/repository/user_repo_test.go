package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"usergate/internal/entity"
	"usergate/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hashed",
		Role:         entity.UserRoleAdmin,
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, user.ID.String(), "00000000-0000-0000-0000-000000000000")

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ada@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	first := &entity.User{Name: "A", Email: "dup@example.com", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.User{Name: "B", Email: "dup@example.com", PasswordHash: "y"}
	assert.Error(t, repo.Create(ctx, second))
}

func TestUserRepository_ListFiltersAndPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		role := entity.UserRoleUser
		if i == 0 {
			role = entity.UserRoleAdmin
		}
		user := &entity.User{
			Name:         fmt.Sprintf("User %d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: "x",
			Role:         role,
		}
		require.NoError(t, repo.Create(ctx, user))
	}

	users, total, err := repo.List(ctx, repository.UserFilter{Page: 1, Limit: 2, SortBy: "email", Order: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, users, 2)
	assert.Equal(t, "user0@example.com", users[0].Email)

	users, _, err = repo.List(ctx, repository.UserFilter{Page: 3, Limit: 2, SortBy: "email", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "user4@example.com", users[0].Email)

	adminRole := entity.UserRoleAdmin
	admins, total, err := repo.List(ctx, repository.UserFilter{Role: &adminRole, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, admins, 1)
	assert.Equal(t, entity.UserRoleAdmin, admins[0].Role)
}

func TestUserRepository_ListDeactivatedFilterMatchesPredicate(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	deactivations := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)
	target := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	createTestUser(t, db, "bystander@example.com", entity.UserRoleUser)

	_, _, err := deactivations.Deactivate(ctx, target.ID, admin.ID, "reason", time.Now())
	require.NoError(t, err)

	deactivated := true
	listed, total, err := users.List(ctx, repository.UserFilter{Deactivated: &deactivated, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, listed, 1)
	assert.Equal(t, target.ID, listed[0].ID)

	active := false
	listed, total, err = users.List(ctx, repository.UserFilter{Deactivated: &active, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	activeUsers, err := users.ListActive(ctx, true)
	require.NoError(t, err)
	assert.Len(t, activeUsers, 2)

	deactivatedUsers, err := users.ListActive(ctx, false)
	require.NoError(t, err)
	require.Len(t, deactivatedUsers, 1)
	assert.Equal(t, target.ID, deactivatedUsers[0].ID)

	// After reactivation the user flips back to the active listing.
	_, err = deactivations.Reactivate(ctx, target.ID, admin.ID, "resolved", time.Now())
	require.NoError(t, err)

	activeUsers, err = users.ListActive(ctx, true)
	require.NoError(t, err)
	assert.Len(t, activeUsers, 3)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	deactivations := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)
	target := createTestUser(t, db, "target@example.com", entity.UserRoleUser)

	_, _, err := deactivations.Deactivate(ctx, target.ID, admin.ID, "reason", time.Now())
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, target.ID))

	gone, err := users.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var stateCount, historyCount int64
	require.NoError(t, db.Model(&entity.Deactivation{}).Where("user_id = ?", target.ID).Count(&stateCount).Error)
	require.NoError(t, db.Model(&entity.DeactivationHistory{}).Where("user_id = ?", target.ID).Count(&historyCount).Error)
	assert.EqualValues(t, 0, stateCount)
	assert.EqualValues(t, 0, historyCount)
}
