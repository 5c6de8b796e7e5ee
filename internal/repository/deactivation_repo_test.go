package repository_test

import (
	"context"
	"testing"
	"time"

	"usergate/internal/entity"
	"usergate/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entity.User{}, &entity.Deactivation{}, &entity.DeactivationHistory{})
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role entity.UserRole) *entity.User {
	t.Helper()
	user := &entity.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashed",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestDeactivationRepository_DeactivateCreatesThenOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	adminA := createTestUser(t, db, "admin-a@example.com", entity.UserRoleAdmin)
	adminB := createTestUser(t, db, "admin-b@example.com", entity.UserRoleAdmin)

	first, created, err := repo.Deactivate(ctx, user.ID, adminA.ID, "policy violation", time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "policy violation", first.DeactivatedReason)
	assert.Equal(t, adminA.ID, first.DeactivatedBy)
	assert.Nil(t, first.ReactivatedAt)

	second, created, err := repo.Deactivate(ctx, user.ID, adminB.ID, "repeat violation", time.Now())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "repeat violation", second.DeactivatedReason)
	assert.Equal(t, adminB.ID, second.DeactivatedBy)

	var count int64
	require.NoError(t, db.Model(&entity.Deactivation{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeactivationRepository_DeactivateResetsReactivatedFields(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)

	_, _, err := repo.Deactivate(ctx, user.ID, admin.ID, "first", time.Now())
	require.NoError(t, err)

	reactivated, err := repo.Reactivate(ctx, user.ID, admin.ID, "appeal accepted", time.Now())
	require.NoError(t, err)
	require.NotNil(t, reactivated)
	require.NotNil(t, reactivated.ReactivatedAt)
	assert.Equal(t, "appeal accepted", *reactivated.ReactivatedReason)
	assert.Equal(t, admin.ID, *reactivated.ReactivatedBy)

	// A fresh deactivation reuses the dormant row and clears the
	// reactivated fields.
	record, created, err := repo.Deactivate(ctx, user.ID, admin.ID, "second", time.Now())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, record.ReactivatedAt)
	assert.Nil(t, record.ReactivatedReason)
	assert.Nil(t, record.ReactivatedBy)
}

func TestDeactivationRepository_ReactivateWithoutLiveRow(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)

	record, err := repo.Reactivate(ctx, user.ID, admin.ID, "nothing to do", time.Now())
	require.NoError(t, err)
	assert.Nil(t, record)

	// Already reactivated counts the same as never deactivated.
	_, _, err = repo.Deactivate(ctx, user.ID, admin.ID, "reason", time.Now())
	require.NoError(t, err)
	_, err = repo.Reactivate(ctx, user.ID, admin.ID, "done", time.Now())
	require.NoError(t, err)

	record, err = repo.Reactivate(ctx, user.ID, admin.ID, "again", time.Now())
	require.NoError(t, err)
	assert.Nil(t, record)

	// No history entry is written for the refused transitions.
	history := fetchHistory(t, db, user.ID)
	assert.Len(t, history.Events, 2)
}

func TestDeactivationRepository_TransitionsAppendHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	adminA := createTestUser(t, db, "admin-a@example.com", entity.UserRoleAdmin)
	adminB := createTestUser(t, db, "admin-b@example.com", entity.UserRoleAdmin)

	_, _, err := repo.Deactivate(ctx, user.ID, adminA.ID, "policy violation", time.Now())
	require.NoError(t, err)
	_, _, err = repo.Deactivate(ctx, user.ID, adminB.ID, "repeat violation", time.Now())
	require.NoError(t, err)

	history := fetchHistory(t, db, user.ID)
	require.Len(t, history.Events, 2)
	assert.Equal(t, entity.TransitionDeactivated, history.Events[0].Kind)
	assert.Equal(t, "policy violation", history.Events[0].Reason)
	assert.Equal(t, adminA.ID, history.Events[0].ActorID)
	assert.Equal(t, "repeat violation", history.Events[1].Reason)
	assert.Equal(t, adminB.ID, history.Events[1].ActorID)

	_, err = repo.Reactivate(ctx, user.ID, adminA.ID, "appeal accepted", time.Now())
	require.NoError(t, err)

	history = fetchHistory(t, db, user.ID)
	require.Len(t, history.Events, 3)
	assert.Equal(t, entity.TransitionReactivated, history.Events[2].Kind)

	// One history row per user, no matter how many transitions.
	var count int64
	require.NoError(t, db.Model(&entity.DeactivationHistory{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeactivationRepository_IsDeactivated(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)

	deactivated, err := repo.IsDeactivated(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deactivated)

	_, _, err = repo.Deactivate(ctx, user.ID, admin.ID, "reason", time.Now())
	require.NoError(t, err)

	deactivated, err = repo.IsDeactivated(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, deactivated)

	_, err = repo.Reactivate(ctx, user.ID, admin.ID, "resolved", time.Now())
	require.NoError(t, err)

	deactivated, err = repo.IsDeactivated(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deactivated)
}

func TestDeactivationRepository_DeleteLeavesHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)

	record, _, err := repo.Deactivate(ctx, user.ID, admin.ID, "reason", time.Now())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, record.ID))

	found, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	history := fetchHistory(t, db, user.ID)
	assert.Len(t, history.Events, 1)

	// Deleting an unknown id is a no-op.
	require.NoError(t, repo.Delete(ctx, uuid.New()))
}

func TestDeactivationRepository_FindLiveByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDeactivationRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "target@example.com", entity.UserRoleUser)
	admin := createTestUser(t, db, "admin@example.com", entity.UserRoleAdmin)

	live, err := repo.FindLiveByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, live)

	_, _, err = repo.Deactivate(ctx, user.ID, admin.ID, "reason", time.Now())
	require.NoError(t, err)

	live, err = repo.FindLiveByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, live)

	_, err = repo.Reactivate(ctx, user.ID, admin.ID, "resolved", time.Now())
	require.NoError(t, err)

	live, err = repo.FindLiveByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, live)

	// The dormant row is still reachable by plain lookup.
	dormant, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, dormant)
	assert.NotNil(t, dormant.ReactivatedAt)
}

func fetchHistory(t *testing.T, db *gorm.DB, userID uuid.UUID) *entity.DeactivationHistory {
	t.Helper()
	var history entity.DeactivationHistory
	require.NoError(t, db.Where("user_id = ?", userID).First(&history).Error)
	return &history
}
