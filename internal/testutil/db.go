// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/rbac-task-api/internal/database"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory sqlite database with foreign keys
// enforced. It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:?_foreign_keys=on"), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		FullName:     email,
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a task with the given ownership references.
func CreateTask(t *testing.T, db *gorm.DB, title string, createdBy, assignedTo *uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:      title,
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityMedium,
		CreatedBy:  createdBy,
		AssignedTo: assignedTo,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// Ref returns a pointer to id.
func Ref(id uint64) *uint64 {
	return &id
}
