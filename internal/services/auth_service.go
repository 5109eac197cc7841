package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/rbac-task-api/internal/constants"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/repository"
	"github.com/yukikurage/rbac-task-api/internal/session"
	"github.com/yukikurage/rbac-task-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token resolution.
type AuthService struct {
	userRepo repository.UserRepository
	issuer   *session.Issuer
	log      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, issuer *session.Issuer, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		log:      log,
	}
}

// RegisterInput represents the information needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// Register creates a user-role account. Self-registration never grants a
// higher role.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	return s.createUser(input, models.RoleUser)
}

// CreateAdmin creates an admin account.
func (s *AuthService) CreateAdmin(input RegisterInput) (*models.User, error) {
	return s.createUser(input, models.RoleAdmin)
}

// EnsureAdmin creates an admin account from input unless an admin already
// exists. It reports whether an account was created. When the email already
// belongs to a non-admin account, seeding is skipped with a warning and the
// existing account keeps its role.
func (s *AuthService) EnsureAdmin(input RegisterInput) (bool, error) {
	count, err := s.userRepo.CountByRole(models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	user, err := s.CreateAdmin(input)
	if errors.Is(err, ErrEmailTaken) {
		s.log.Warn("Admin seeding skipped, email belongs to an existing account",
			zap.String("email", strings.TrimSpace(input.Email)))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.log.Info("Admin account created", zap.Uint64("user_id", user.ID), zap.String("email", user.Email))
	return true, nil
}

func (s *AuthService) createUser(input RegisterInput, role models.Role) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > constants.MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}
	fullName := strings.TrimSpace(input.FullName)
	if len(fullName) > constants.MaxFullNameLength {
		return nil, ErrFullNameTooLong
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToHashPassword, err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns a signed access token together
// with the authenticated user.
func (s *AuthService) Login(input LoginInput) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, input.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Email, 0)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ResolveToken verifies token and loads the user it was issued for. A token
// whose subject no longer exists is rejected like any other bad token.
func (s *AuthService) ResolveToken(token string) (*models.User, error) {
	email, err := s.issuer.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
