package service

import (
	"context"

	"usergate/internal/entity"
	"usergate/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DeactivationService drives the active/deactivated state machine. Every
// successful transition writes the current-state row and appends to the
// audit history atomically.
type DeactivationService struct {
	users         repository.UserRepository
	deactivations repository.DeactivationRepository
	emailSender   EmailSender
	clock         Clock
	logger        logrus.FieldLogger
}

func NewDeactivationService(
	users repository.UserRepository,
	deactivations repository.DeactivationRepository,
	emailSender EmailSender,
	clock Clock,
	logger logrus.FieldLogger,
) *DeactivationService {
	return &DeactivationService{
		users:         users,
		deactivations: deactivations,
		emailSender:   emailSender,
		clock:         clock,
		logger:        logger,
	}
}

type TransitionResult struct {
	Record  *entity.Deactivation
	Created bool
}

func (s *DeactivationService) Deactivate(ctx context.Context, userID uuid.UUID, actorID uuid.UUID, reason string) (*TransitionResult, error) {
	if userID == actorID {
		return nil, ErrSelfTarget
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	record, created, err := s.deactivations.Deactivate(ctx, userID, actorID, reason, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.notify(ctx, user.Email, reason, entity.TransitionDeactivated)
	return &TransitionResult{Record: record, Created: created}, nil
}

func (s *DeactivationService) Reactivate(ctx context.Context, userID uuid.UUID, actorID uuid.UUID, reason string) (*entity.Deactivation, error) {
	if userID == actorID {
		return nil, ErrSelfTarget
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	record, err := s.deactivations.Reactivate(ctx, userID, actorID, reason, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrNotDeactivated
	}

	s.notify(ctx, user.Email, reason, entity.TransitionReactivated)
	return record, nil
}

// DeleteDeactivation removes a current-state row by its own id. The audit
// history is left untouched.
func (s *DeactivationService) DeleteDeactivation(ctx context.Context, id uuid.UUID) error {
	return s.deactivations.Delete(ctx, id)
}

func (s *DeactivationService) IsActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	deactivated, err := s.deactivations.IsDeactivated(ctx, userID)
	if err != nil {
		return false, err
	}
	return !deactivated, nil
}

func (s *DeactivationService) List(ctx context.Context) ([]entity.Deactivation, error) {
	return s.deactivations.List(ctx)
}

type DeactivatedUserDetail struct {
	Record *entity.Deactivation
	Target *entity.User
	Actor  *entity.User
}

// GetDeactivatedUser resolves the live state row for a user together with
// the target and the acting admin, looked up as two separate views over the
// users table.
func (s *DeactivationService) GetDeactivatedUser(ctx context.Context, userID uuid.UUID) (*DeactivatedUserDetail, error) {
	record, err := s.deactivations.FindLiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrDeactivationNotFound
	}

	target, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	actor, err := s.users.FindByID(ctx, record.DeactivatedBy)
	if err != nil {
		return nil, err
	}
	if target == nil || actor == nil {
		return nil, ErrDeactivationNotFound
	}

	return &DeactivatedUserDetail{Record: record, Target: target, Actor: actor}, nil
}

func (s *DeactivationService) notify(ctx context.Context, email string, reason string, kind entity.TransitionKind) {
	if s.emailSender == nil {
		return
	}
	var err error
	if kind == entity.TransitionDeactivated {
		err = s.emailSender.SendDeactivationNotice(ctx, email, reason)
	} else {
		err = s.emailSender.SendReactivationNotice(ctx, email, reason)
	}
	if err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("email", email).Warn("status notification failed")
	}
}
