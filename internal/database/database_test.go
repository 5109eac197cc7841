package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/rbac-task-api/internal/config"
	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(sqlite.Open(":memory:"), logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			d, err := Dialector(&config.Config{DBDriver: driver, DBName: "tasks"})
			require.NoError(t, err)
			assert.Equal(t, driver, d.Name())
		})
	}

	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db, zap.NewNop()))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasTable(&models.Task{}))
	for _, idx := range taskIndexes {
		assert.True(t, migrator.HasIndex(&models.Task{}, idx.name), idx.name)
	}

	// A second run finds every index and is a no-op.
	require.NoError(t, Migrate(db, zap.NewNop()))
}

func TestPaginate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db, zap.NewNop()))

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Task{Title: "task", Status: models.TaskStatusPending, Priority: models.TaskPriorityLow}).Error)
	}

	var tasks []models.Task
	err := db.Scopes(Paginate(utils.PaginationParams{Skip: 3, Limit: 10})).Order("id").Find(&tasks).Error
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, uint64(4), tasks[0].ID)
}
