package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/rbac-task-api/internal/authz"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/repository"
	"github.com/yukikurage/rbac-task-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskService handles task business logic. Every operation takes the acting
// user and consults authz before touching the store.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, log *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		log:      log,
	}
}

// ListTasksInput represents the caller's requested filters and window
type ListTasksInput struct {
	Status     *models.TaskStatus
	AssignedTo *uint64
	Params     utils.PaginationParams
}

// TaskPage is one window of a role-scoped listing
type TaskPage struct {
	Tasks []models.Task
	Total int64
	Page  int
	Size  int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	Priority    *models.TaskPriority
	DueDate     *time.Time
	AssignedTo  *uint64
}

// ListTasks returns the caller's visible tasks matching input. The total
// counts the same filter without the window.
func (s *TaskService) ListTasks(actor *models.User, input ListTasksInput) (*TaskPage, error) {
	sub := authz.SubjectOf(actor)
	if err := authz.Authorize(sub, authz.ActionList, authz.Resource{}); err != nil {
		return nil, err
	}

	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	scope := authz.ListScope(sub, authz.Scope{AssignedTo: input.AssignedTo})
	filter := repository.TaskFilter{
		CreatedBy:  scope.CreatedBy,
		AssignedTo: scope.AssignedTo,
		Status:     input.Status,
	}

	tasks, err := s.taskRepo.List(filter, input.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	total, err := s.taskRepo.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &TaskPage{
		Tasks: tasks,
		Total: total,
		Page:  input.Params.Page(),
		Size:  input.Params.Limit,
	}, nil
}

// GetTask returns a task the caller may read
func (s *TaskService) GetTask(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(authz.SubjectOf(actor), authz.ActionRead, authz.ResourceOf(task)); err != nil {
		return nil, err
	}

	return task, nil
}

// CreateTask creates a task owned by the caller
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if err := authz.Authorize(authz.SubjectOf(actor), authz.ActionCreate, authz.Resource{}); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleEmpty
	}

	priority := models.TaskPriorityMedium
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		priority = *input.Priority
	}

	if input.AssignedTo != nil {
		if err := s.ensureAssignee(*input.AssignedTo); err != nil {
			return nil, err
		}
	}

	creatorID := actor.ID
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		CreatedBy:   &creatorID,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.findTask(task.ID)
}

// UpdateTask applies changes to a task the caller may update. Only the
// fields present in changes are written.
func (s *TaskService) UpdateTask(actor *models.User, taskID uint64, changes repository.TaskChanges) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	err = authz.Authorize(authz.SubjectOf(actor), authz.ActionUpdate, authz.ResourceOf(task), changes.Fields()...)
	if err != nil {
		return nil, err
	}

	if err := validateChanges(changes); err != nil {
		return nil, err
	}

	if changes.AssignedTo.Value != nil {
		if err := s.ensureAssignee(*changes.AssignedTo.Value); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(task, changes); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.findTask(task.ID)
}

// DeleteTask deletes a task the caller may delete
func (s *TaskService) DeleteTask(actor *models.User, taskID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if err := authz.Authorize(authz.SubjectOf(actor), authz.ActionDelete, authz.ResourceOf(task)); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.log.Info("Task deleted", zap.Uint64("task_id", task.ID), zap.Uint64("actor_id", actor.ID))
	return nil
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ensureAssignee verifies that a user exists before it is referenced
func (s *TaskService) ensureAssignee(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	return nil
}

func validateChanges(changes repository.TaskChanges) error {
	if changes.Title.IsNull() || changes.Status.IsNull() || changes.Priority.IsNull() {
		return ErrFieldNotNullable
	}
	if changes.Title.Value != nil && strings.TrimSpace(*changes.Title.Value) == "" {
		return ErrTitleEmpty
	}
	if changes.Status.Value != nil && !changes.Status.Value.Valid() {
		return ErrInvalidStatus
	}
	if changes.Priority.Value != nil && !changes.Priority.Value.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
