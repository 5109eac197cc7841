package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/rbac-task-api/internal/constants"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/repository"
	"github.com/yukikurage/rbac-task-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles the user directory and self-service profile updates.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// UpdateUserInput represents a partial profile update. Nil fields are left unchanged.
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Password *string
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListUsers returns a page of users in id order
func (s *UserService) ListUsers(params utils.PaginationParams) ([]models.User, error) {
	users, err := s.userRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies input to user and returns the stored result
func (s *UserService) UpdateUser(user *models.User, input UpdateUserInput) (*models.User, error) {
	var changes repository.UserChanges

	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		if len(fullName) > constants.MaxFullNameLength {
			return nil, ErrFullNameTooLong
		}
		changes.FullName = &fullName
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if email != user.Email {
			existing, err := s.userRepo.FindByEmail(email)
			if err == nil && existing.ID != user.ID {
				return nil, ErrEmailTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			changes.Email = &email
		}
	}

	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		if len(*input.Password) > constants.MaxPasswordLength {
			return nil, ErrPasswordTooLong
		}
		hashedPassword, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToHashPassword, err)
		}
		changes.PasswordHash = &hashedPassword
	}

	if err := s.userRepo.Update(user, changes); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetUser(user.ID)
}
