package service

import (
	"context"

	"usergate/internal/entity"
	"usergate/internal/repository"

	"github.com/google/uuid"
)

type HistoryService struct {
	histories repository.HistoryRepository
}

func NewHistoryService(histories repository.HistoryRepository) *HistoryService {
	return &HistoryService{histories: histories}
}

func (s *HistoryService) GetByUser(ctx context.Context, userID uuid.UUID) (*entity.DeactivationHistory, error) {
	history, err := s.histories.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, ErrHistoryNotFound
	}
	return history, nil
}

func (s *HistoryService) List(ctx context.Context) ([]entity.DeactivationHistory, error) {
	return s.histories.List(ctx)
}
