package repository

import (
	"context"
	"errors"

	"usergate/internal/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DeactivationHistory, error)
	List(ctx context.Context) ([]entity.DeactivationHistory, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DeactivationHistory, error) {
	var history entity.DeactivationHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&history).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &history, err
}

func (r *historyRepository) List(ctx context.Context) ([]entity.DeactivationHistory, error) {
	var histories []entity.DeactivationHistory
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&histories).Error; err != nil {
		return nil, err
	}
	return histories, nil
}

// appendTransition grows the user's audit log inside the caller's
// transaction. The state-row write that precedes it holds the row lock, so
// concurrent transitions for the same user append serially.
func appendTransition(tx *gorm.DB, userID uuid.UUID, event entity.DeactivationEvent) error {
	var history entity.DeactivationHistory
	err := tx.Where("user_id = ?", userID).First(&history).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		history = entity.DeactivationHistory{
			UserID: userID,
			Events: datatypes.NewJSONSlice([]entity.DeactivationEvent{event}),
		}
		return tx.Create(&history).Error
	}
	if err != nil {
		return err
	}

	history.Events = append(history.Events, event)
	return tx.Model(&history).Update("events", history.Events).Error
}
