package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserById(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateCurrentUser(ctx context.Context, displayName, timezone string) (User, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewUserService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo}
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	id, err := CurrentId(ctx)
	if err != nil {
		return User{}, err
	}
	return s.repo.FindById(ctx, id)
}

func (s *ServiceImpl) GetUserById(ctx context.Context, id string) (User, error) {
	return s.repo.FindById(ctx, id)
}

func (s *ServiceImpl) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// CreateUser assigns the id and persists the account.
func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Id = uuid.New().String()
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (s *ServiceImpl) UpdateCurrentUser(ctx context.Context, displayName, timezone string) (User, error) {
	current, err := s.GetCurrentUser(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if displayName != "" {
		current.DisplayName = displayName
	}
	if timezone != "" {
		current.Timezone = timezone
	}
	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return updated, nil
}
