package repository_test

import (
	"context"
	"testing"
	"time"

	"usergate/internal/entity"
	"usergate/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository_FindByUserID(t *testing.T) {
	db := setupTestDB(t)
	histories := repository.NewHistoryRepository(db)
	deactivations := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)
	target := createTestUser(t, db, "target@example.com", entity.UserRoleUser)

	missing, err := histories.FindByUserID(ctx, target.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, _, err = deactivations.Deactivate(ctx, target.ID, admin.ID, "reason", time.Now())
	require.NoError(t, err)

	history, err := histories.FindByUserID(ctx, target.ID)
	require.NoError(t, err)
	require.NotNil(t, history)
	require.Len(t, history.Events, 1)
	assert.Equal(t, entity.TransitionDeactivated, history.Events[0].Kind)
}

func TestHistoryRepository_List(t *testing.T) {
	db := setupTestDB(t)
	histories := repository.NewHistoryRepository(db)
	deactivations := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)
	first := createTestUser(t, db, "first@example.com", entity.UserRoleUser)
	second := createTestUser(t, db, "second@example.com", entity.UserRoleUser)

	all, err := histories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, _, err = deactivations.Deactivate(ctx, first.ID, admin.ID, "one", time.Now())
	require.NoError(t, err)
	_, _, err = deactivations.Deactivate(ctx, second.ID, admin.ID, "two", time.Now())
	require.NoError(t, err)

	all, err = histories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
