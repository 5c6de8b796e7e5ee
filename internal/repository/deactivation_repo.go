package repository

import (
	"context"
	"errors"
	"time"

	"usergate/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeactivationRepository interface {
	// Deactivate upserts the current-state row for userID and appends the
	// transition to the user's history in one transaction. The boolean
	// reports whether the row was created rather than overwritten.
	Deactivate(ctx context.Context, userID uuid.UUID, actorID uuid.UUID, reason string, at time.Time) (*entity.Deactivation, bool, error)
	// Reactivate closes the live deactivation row and appends the
	// transition to the history. Returns (nil, nil) when the user has no
	// live deactivation row.
	Reactivate(ctx context.Context, userID uuid.UUID, actorID uuid.UUID, reason string, at time.Time) (*entity.Deactivation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Deactivation, error)
	FindLiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Deactivation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Deactivation, error)
	IsDeactivated(ctx context.Context, userID uuid.UUID) (bool, error)
}

type deactivationRepository struct {
	db *gorm.DB
}

func NewDeactivationRepository(db *gorm.DB) DeactivationRepository {
	return &deactivationRepository{db: db}
}

// liveDeactivationUserIDs is the single definition of the active predicate:
// a user is deactivated iff their id appears in this subquery. Every caller
// (single lookups and set filters) goes through it so the two can never drift.
func liveDeactivationUserIDs(db *gorm.DB) *gorm.DB {
	return db.Model(&entity.Deactivation{}).
		Select("user_id").
		Where("reactivated_at IS NULL")
}

// ScopeActive filters a users query down to active or deactivated members
// using the shared predicate.
func ScopeActive(db *gorm.DB, active bool) func(*gorm.DB) *gorm.DB {
	sub := liveDeactivationUserIDs(db)
	if active {
		return func(q *gorm.DB) *gorm.DB { return q.Where("id NOT IN (?)", sub) }
	}
	return func(q *gorm.DB) *gorm.DB { return q.Where("id IN (?)", sub) }
}

func (r *deactivationRepository) Deactivate(ctx context.Context, userID uuid.UUID, actorID uuid.UUID, reason string, at time.Time) (*entity.Deactivation, bool, error) {
	var (
		record  entity.Deactivation
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.Deactivation
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return err
		}

		// Atomic insert-or-update keyed on user_id: two concurrent
		// deactivations serialize at the uniqueness constraint instead
		// of racing a read-then-write sequence. The existence check
		// above only decides the created/updated result.
		upsert := entity.Deactivation{
			UserID:            userID,
			DeactivatedReason: reason,
			DeactivatedAt:     at,
			DeactivatedBy:     actorID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"deactivated_reason": reason,
				"deactivated_at":     at,
				"deactivated_by":     actorID,
				"reactivated_reason": nil,
				"reactivated_at":     nil,
				"reactivated_by":     nil,
			}),
		}).Create(&upsert).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).First(&record).Error; err != nil {
			return err
		}

		return appendTransition(tx, userID, entity.DeactivationEvent{
			Kind:    entity.TransitionDeactivated,
			Reason:  reason,
			At:      at,
			ActorID: actorID,
		})
	})
	if err != nil {
		return nil, false, err
	}
	return &record, created, nil
}

func (r *deactivationRepository) Reactivate(ctx context.Context, userID uuid.UUID, actorID uuid.UUID, reason string, at time.Time) (*entity.Deactivation, error) {
	var record *entity.Deactivation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var live entity.Deactivation
		err := tx.Where("user_id = ? AND reactivated_at IS NULL", userID).First(&live).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		updates := map[string]any{
			"reactivated_reason": reason,
			"reactivated_at":     at,
			"reactivated_by":     actorID,
		}
		if err := tx.Model(&entity.Deactivation{}).Where("id = ?", live.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", live.ID).First(&live).Error; err != nil {
			return err
		}
		record = &live

		return appendTransition(tx, userID, entity.DeactivationEvent{
			Kind:    entity.TransitionReactivated,
			Reason:  reason,
			At:      at,
			ActorID: actorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *deactivationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Deactivation, error) {
	var record entity.Deactivation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *deactivationRepository) FindLiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Deactivation, error) {
	var record entity.Deactivation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND reactivated_at IS NULL", userID).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *deactivationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Deactivation{}).Error
}

func (r *deactivationRepository) List(ctx context.Context) ([]entity.Deactivation, error) {
	var records []entity.Deactivation
	err := r.db.WithContext(ctx).
		Order("deactivated_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *deactivationRepository) IsDeactivated(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := liveDeactivationUserIDs(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
