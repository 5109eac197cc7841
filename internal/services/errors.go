package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/rbac-task-api/internal/constants"
)

// ErrValidation is wrapped by every input rejection the services raise.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAssigneeNotFound   = errors.New("assigned user not found")

	ErrEmailRequired    = fmt.Errorf("%w: email is required", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrValidation, constants.MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, constants.MaxPasswordLength)
	ErrFullNameTooLong  = fmt.Errorf("%w: full_name must be at most %d characters", ErrValidation, constants.MaxFullNameLength)
	ErrTitleEmpty       = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrInvalidStatus    = fmt.Errorf("%w: invalid task status", ErrValidation)
	ErrInvalidPriority  = fmt.Errorf("%w: invalid task priority", ErrValidation)
	ErrFieldNotNullable = fmt.Errorf("%w: field cannot be null", ErrValidation)

	ErrFailedToHashPassword = errors.New("failed to hash password")
)
