package service

import (
	"context"
	"strings"
	"time"

	"usergate/internal/entity"
	"usergate/internal/repository"
	"usergate/internal/utils"

	"github.com/google/uuid"
)

type UserService struct {
	users        repository.UserRepository
	passwordHash PasswordHasher
}

func NewUserService(users repository.UserRepository, passwordHash PasswordHasher) *UserService {
	return &UserService{users: users, passwordHash: passwordHash}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

type ListUsersInput struct {
	Page        int
	Limit       int
	SortBy      string
	Order       string
	Role        string
	Deactivated *bool
}

type ListUsersResult struct {
	Users      []entity.User
	Total      int64
	Page       int
	TotalPages int
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := entity.UserRole(input.Role)
	if role != entity.UserRoleAdmin {
		role = entity.UserRoleUser
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if input.Email != "" {
		email := utils.NormalizeEmail(input.Email)
		if email != user.Email {
			existing, err := s.users.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailAlreadyRegistered
			}
			user.Email = email
		}
	}
	if input.Role != "" {
		user.Role = entity.UserRole(input.Role)
	}

	now := time.Now()
	user.UpdatedAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.users.Delete(ctx, id)
}

func (s *UserService) List(ctx context.Context, input ListUsersInput) (*ListUsersResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := repository.UserFilter{
		Page:        page,
		Limit:       limit,
		SortBy:      input.SortBy,
		Order:       input.Order,
		Deactivated: input.Deactivated,
	}
	if input.Role != "" {
		role := entity.UserRole(input.Role)
		filter.Role = &role
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListUsersResult{
		Users:      users,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

func (s *UserService) ListActivated(ctx context.Context) ([]entity.User, error) {
	return s.users.ListActive(ctx, true)
}

func (s *UserService) ListDeactivated(ctx context.Context) ([]entity.User, error) {
	return s.users.ListActive(ctx, false)
}
