package repository

import (
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with creator and assignee loaded
	FindByID(id uint64) (*models.Task, error)

	// List retrieves the tasks matching filter inside the pagination window, in id order
	List(filter TaskFilter, params utils.PaginationParams) ([]models.Task, error)

	// Count counts the tasks matching filter, ignoring pagination
	Count(filter TaskFilter) (int64, error)

	// Update writes only the columns present in changes
	Update(task *models.Task, changes TaskChanges) error

	// Delete deletes a task; deleting a missing task is not an error
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks. Nil fields impose no
// constraint; set fields combine with AND.
type TaskFilter struct {
	CreatedBy  *uint64
	AssignedTo *uint64
	Status     *models.TaskStatus
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update writes only the columns present in changes
	Update(user *models.User, changes UserChanges) error

	// List retrieves users inside the pagination window, in id order
	List(params utils.PaginationParams) ([]models.User, error)

	// CountByRole counts the users holding role
	CountByRole(role models.Role) (int64, error)
}
